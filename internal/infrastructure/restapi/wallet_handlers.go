package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
)

type addWalletRequest struct {
	Address string `json:"address" binding:"required"`
	Chain   string `json:"chain"`
	Label   string `json:"label"`
}

// WalletHandler manages tracked wallets.
type WalletHandler struct {
	walletService port.WalletService
}

func NewWalletHandler(ws port.WalletService) *WalletHandler {
	return &WalletHandler{walletService: ws}
}

func (h *WalletHandler) ListWalletsHandler(c *gin.Context) {
	wallets, err := h.walletService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

func (h *WalletHandler) AddWalletHandler(c *gin.Context) {
	var req addWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errValidation("address is required"))
		return
	}
	created, err := h.walletService.Add(c.Request.Context(), entity.Wallet{
		Address: req.Address,
		Chain:   req.Chain,
		Label:   req.Label,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WalletHandler) RemoveWalletHandler(c *gin.Context) {
	if err := h.walletService.Remove(c.Request.Context(), c.Param("address")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
