package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/readings, /api/v1/interpret, /api/v1/chat
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Readings endpoints - the normalized time-ordered set
	readings := v1.Group("/readings")
	{
		readings.GET("", s.handleV1ListReadings)
		readings.GET("/series", s.handleV1ReadingSeries)
		readings.GET("/latest", s.handleV1LatestReading)
		readings.GET("/export", s.handleV1ExportReadings)
		readings.POST("/refresh", s.handleV1RefreshReadings)
	}

	// Interpretation endpoints - hosted text generation over the latest reading
	v1.POST("/interpret", s.handleV1Interpret)
	v1.POST("/chat", s.handleV1Chat)
}
