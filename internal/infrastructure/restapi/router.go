package restapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wallet_tracker/internal/app/port"
)

// Dependencies collects what the router needs.
type Dependencies struct {
	Portfolio      port.PortfolioService
	Wallets        port.WalletService
	Auth           port.AuthService
	Metrics        http.Handler
	AllowedOrigins []string
	DefaultSort    string
	Logger         port.Logger
	AccessLogger   *zap.Logger
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 0 || containsWildcard(deps.AllowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	if deps.AccessLogger != nil {
		router.Use(ZapLoggerMiddleware(deps.AccessLogger))
	}
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		resp := gin.H{
			"status":        "ok",
			"authenticated": deps.Auth.IsAuthenticated(),
		}
		if last := deps.Portfolio.LastRefresh(); !last.IsZero() {
			resp["lastRefresh"] = last.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, resp)
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	portfolioHandler := NewPortfolioHandler(deps.Portfolio, deps.DefaultSort, deps.Logger)
	walletHandler := NewWalletHandler(deps.Wallets)
	authHandler := NewAuthHandler(deps.Auth)

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", authHandler.LoginHandler)
		auth.POST("/logout", authHandler.LogoutHandler)
		auth.GET("/status", authHandler.StatusHandler)

		wallets := v1.Group("/wallets")
		wallets.GET("", walletHandler.ListWalletsHandler)
		wallets.POST("", walletHandler.AddWalletHandler)
		wallets.DELETE("/:address", walletHandler.RemoveWalletHandler)

		portfolio := v1.Group("/portfolio")
		portfolio.GET("", portfolioHandler.GetPortfolioHandler)
		portfolio.GET("/groups", portfolioHandler.GetGroupsHandler)
		portfolio.GET("/wallets/:address", portfolioHandler.GetWalletPortfolioHandler)
		portfolio.POST("/refresh", portfolioHandler.RefreshHandler)

		v1.GET("/chains", ListChainsHandler)
		v1.GET("/chains/:chain", GetChainHandler)
	}

	return router
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
