package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errDeviceNotFound = "device not found"

// @Summary      Latest humidity
// @Tags         readings
// @Produce      json
// @Param        device_id  query  string  true  "Device id (must match token)"
// @Success      200  {object}  map[string]float64
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /humidity [get]
// @Security     BearerAuth
func (h *Handler) getHumidity(c *gin.Context) {
	deviceID, ok := h.scopedDeviceID(c)
	if !ok {
		return
	}
	reading, found := h.services.Latest(deviceID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"humidity": reading.Humidity})
}

// @Summary      Latest light level
// @Tags         readings
// @Produce      json
// @Param        device_id  query  string  true  "Device id (must match token)"
// @Success      200  {object}  map[string]float64
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /lightlevel [get]
// @Security     BearerAuth
func (h *Handler) getLightLevel(c *gin.Context) {
	deviceID, ok := h.scopedDeviceID(c)
	if !ok {
		return
	}
	reading, found := h.services.Latest(deviceID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"light": reading.Light})
}

// @Summary      Water presence
// @Tags         readings
// @Produce      json
// @Param        device_id  query  string  true  "Device id (must match token)"
// @Success      200  {object}  map[string]int
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /waterlevel [get]
// @Security     BearerAuth
func (h *Handler) getWaterLevel(c *gin.Context) {
	deviceID, ok := h.scopedDeviceID(c)
	if !ok {
		return
	}
	reading, found := h.services.Latest(deviceID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"water": reading.Water})
}

// @Summary      Daily light-switch count
// @Tags         readings
// @Produce      json
// @Param        device_id  query  string  true  "Device id (must match token)"
// @Success      200  {object}  map[string]int
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /lightswitches [get]
// @Security     BearerAuth
func (h *Handler) getLightSwitches(c *gin.Context) {
	deviceID, ok := h.scopedDeviceID(c)
	if !ok {
		return
	}
	count, err := h.services.SwitchCount(c.Request.Context(), deviceID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("switch_count_failed", "device_id", deviceID, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// @Summary      Token's bound device
// @Tags         readings
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /user/device [get]
// @Security     BearerAuth
func (h *Handler) getUserDevice(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"device_id": c.GetString(deviceIDKey)})
}
