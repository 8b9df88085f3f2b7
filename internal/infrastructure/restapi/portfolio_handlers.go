package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/app/viewmodel"
	"wallet_tracker/internal/domain/entity"
)

// PortfolioHandler обрабатывает HTTP запросы, связанные с портфелем.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	defaultSort      entity.SortCriterion
	logger           port.Logger
}

// NewPortfolioHandler создает новый экземпляр PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, defaultSort string, logger port.Logger) *PortfolioHandler {
	criterion, ok := entity.ParseSortCriterion(defaultSort)
	if !ok && defaultSort != "" {
		logger.Warn("Unknown default sort in config, using value", "sort", defaultSort)
	}
	return &PortfolioHandler{portfolioService: ps, defaultSort: criterion, logger: logger}
}

// sortCriterion reads ?sort=. Unknown values fall back to value ordering.
func (h *PortfolioHandler) sortCriterion(c *gin.Context) entity.SortCriterion {
	raw := strings.TrimSpace(c.Query("sort"))
	if raw == "" {
		return h.defaultSort
	}
	criterion, ok := entity.ParseSortCriterion(raw)
	if !ok {
		h.logger.Warn("Unknown sort criterion, falling back", "sort", raw, "fallback", criterion.String())
	}
	return criterion
}

func (h *PortfolioHandler) withStatus(resp PortfolioResponse) PortfolioResponse {
	if last := h.portfolioService.LastRefresh(); !last.IsZero() {
		resp.LastRefresh = &last
	}
	resp.FailedWallets = h.portfolioService.FailedWallets()
	return resp
}

// GetPortfolioHandler отдает все активы, отсортированные и сгруппированные по сетям.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	view := viewmodel.BuildView(h.portfolioService.Holdings(), h.sortCriterion(c))
	c.JSON(http.StatusOK, h.withStatus(toPortfolioResponse(view)))
}

// GetGroupsHandler отдает только группы по сетям.
func (h *PortfolioHandler) GetGroupsHandler(c *gin.Context) {
	view := viewmodel.BuildView(h.portfolioService.Holdings(), h.sortCriterion(c))
	c.JSON(http.StatusOK, GroupsResponse{
		Sort:   view.Criterion.String(),
		Groups: toGroupResponses(view.Groups),
	})
}

// GetWalletPortfolioHandler отдает портфель одного кошелька.
func (h *PortfolioHandler) GetWalletPortfolioHandler(c *gin.Context) {
	address := strings.TrimSpace(c.Param("address"))
	if address == "" {
		respondError(c, errValidation("wallet address is required"))
		return
	}
	holdings := viewmodel.FilterByWallet(h.portfolioService.Holdings(), address)
	view := viewmodel.BuildView(holdings, h.sortCriterion(c))

	resp := h.withStatus(toPortfolioResponse(view))
	failed := make([]entity.WalletFetchError, 0)
	for _, f := range resp.FailedWallets {
		if strings.EqualFold(f.WalletAddress, address) {
			failed = append(failed, f)
		}
	}
	resp.FailedWallets = failed
	c.JSON(http.StatusOK, resp)
}

// RefreshHandler запускает обновление портфеля вне расписания.
func (h *PortfolioHandler) RefreshHandler(c *gin.Context) {
	if err := h.portfolioService.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	last := h.portfolioService.LastRefresh()
	c.JSON(http.StatusOK, gin.H{
		"lastRefresh":   last,
		"holdingCount":  len(h.portfolioService.Holdings()),
		"failedWallets": h.portfolioService.FailedWallets(),
	})
}
