package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aquaponics/internal/models"
	"aquaponics/internal/service"
)

// historyFilter extracts the shared history query parameters. The scope
// check has already bound device_id to the token.
func historyFilter(c *gin.Context, deviceID string) service.HistoryFilter {
	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}
	return service.HistoryFilter{
		DeviceID: deviceID,
		Start:    c.Query("start"),
		End:      c.Query("end"),
		Limit:    limit,
		Timezone: c.Query("timezone"),
	}
}

func (h *Handler) serveHistory(c *gin.Context, kind string,
	query func(context.Context, service.HistoryFilter) ([]models.DataPoint, error)) {

	deviceID, ok := h.scopedDeviceID(c)
	if !ok {
		return
	}
	points, err := query(c.Request.Context(), historyFilter(c, deviceID))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("history_query_failed", "kind", kind, "device_id", deviceID, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, points)
}

// @Summary      Hourly humidity history
// @Description  Ordered {value, timestamp} rows; defaults: trailing 24h, 100 rows. timezone=utc shifts stored timestamps by -3h for display.
// @Tags         history
// @Produce      json
// @Param        device_id  query  string  true   "Device id (must match token)"
// @Param        start      query  string  false  "Range start (YYYY-MM-DD HH:MM:SS)"
// @Param        end        query  string  false  "Range end (YYYY-MM-DD HH:MM:SS)"
// @Param        limit      query  int     false  "Max rows (default 100)"
// @Param        timezone   query  string  false  "Set to 'utc' for the display shift"
// @Success      200  {array}   models.DataPoint
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /data/humidity [get]
// @Security     BearerAuth
func (h *Handler) getHumidityHistory(c *gin.Context) {
	h.serveHistory(c, "humidity", h.services.Humidity)
}

// @Summary      Hourly light history
// @Tags         history
// @Produce      json
// @Param        device_id  query  string  true   "Device id (must match token)"
// @Param        start      query  string  false  "Range start (YYYY-MM-DD HH:MM:SS)"
// @Param        end        query  string  false  "Range end (YYYY-MM-DD HH:MM:SS)"
// @Param        limit      query  int     false  "Max rows (default 100)"
// @Param        timezone   query  string  false  "Set to 'utc' for the display shift"
// @Success      200  {array}   models.DataPoint
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /data/light [get]
// @Security     BearerAuth
func (h *Handler) getLightHistory(c *gin.Context) {
	h.serveHistory(c, "light", h.services.Light)
}
