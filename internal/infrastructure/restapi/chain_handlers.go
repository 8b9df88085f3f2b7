package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_tracker/internal/app/viewmodel"
)

type chainResponse struct {
	Raw         string `json:"raw,omitempty"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
}

// ListChainsHandler returns every chain with a known display name and color.
func ListChainsHandler(c *gin.Context) {
	known := viewmodel.KnownChains()
	out := make([]chainResponse, 0, len(known))
	for _, info := range known {
		out = append(out, chainResponse{DisplayName: info.DisplayName, Color: info.Color})
	}
	c.JSON(http.StatusOK, gin.H{"chains": out})
}

// GetChainHandler normalizes a raw chain identifier.
func GetChainHandler(c *gin.Context) {
	raw := c.Param("chain")
	info := viewmodel.NormalizeChain(raw)
	c.JSON(http.StatusOK, chainResponse{Raw: raw, DisplayName: info.DisplayName, Color: info.Color})
}
