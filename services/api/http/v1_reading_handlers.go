package http

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davin-ai/agriview/services/api/normalize"
)

// seriesPoint is one chart sample: x = timestamp, y = value.
type seriesPoint struct {
	Timestamp time.Time `json:"ts"`
	Value     float64   `json:"value"`
}

// handleV1ListReadings returns the full ordered reading set
// GET /api/v1/readings
func (s *Server) handleV1ListReadings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	readings, err := s.feed.Readings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": readings,
		"meta": gin.H{
			"count": len(readings),
		},
	})
}

// handleV1ReadingSeries returns one time series per sensor field
// GET /api/v1/readings/series
func (s *Server) handleV1ReadingSeries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	readings, err := s.feed.Readings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	series := make(map[string][]seriesPoint, len(normalize.SensorFields))
	for _, field := range normalize.SensorFields {
		series[field] = make([]seriesPoint, 0, len(readings))
	}
	for _, r := range readings {
		values := map[string]float64{
			"temperature":     r.Temperature,
			"humidity":        r.Humidity,
			"soil_moisture":   r.SoilMoisture,
			"soil_nitrogen":   r.SoilNitrogen,
			"soil_phosphorus": r.SoilPhosphorus,
			"soil_potassium":  r.SoilPotassium,
		}
		for _, field := range normalize.SensorFields {
			series[field] = append(series[field], seriesPoint{Timestamp: r.Timestamp, Value: values[field]})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"fields": normalize.SensorFields,
			"series": series,
		},
		"meta": gin.H{
			"count": len(readings),
		},
	})
}

// handleV1LatestReading returns the newest reading as the summary view
// GET /api/v1/readings/latest
func (s *Server) handleV1LatestReading(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	latest, ok, err := s.feed.Latest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no readings available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": latest})
}

// handleV1ExportReadings streams the reading set as CSV
// GET /api/v1/readings/export
func (s *Server) handleV1ExportReadings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	readings, err := s.feed.Readings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := normalize.WriteCSV(&buf, readings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agriculture_data.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// handleV1RefreshReadings forces a fetch cycle ahead of the TTL
// POST /api/v1/readings/refresh
func (s *Server) handleV1RefreshReadings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	readings, err := s.feed.Refresh(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"refreshed": true},
		"meta": gin.H{"count": len(readings)},
	})
}
