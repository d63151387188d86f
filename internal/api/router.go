package api

import (
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/service" // Points orchestration

	"github.com/gin-gonic/gin"                              // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus HTTP handler
)

// Routes registers the points endpoints and the metrics endpoint on a router
func Routes(r *gin.Engine, svc *service.PointsService) {
	pointsGroup := r.Group("/points")
	pointsGroup.POST("", GrantHandler(svc))                     // Grant endpoint
	pointsGroup.GET("/leaderboard", LeaderboardHandler(svc))    // Leaderboard endpoint
	pointsGroup.GET("/:userId", GetBalanceHandler(svc))         // Balance endpoint
	pointsGroup.PUT("/:id", AmendReasonHandler(svc))            // Reason amendment endpoint
	pointsGroup.DELETE("/:userId", EraseUserHandler(svc))       // Erasure endpoint

	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus metrics endpoint
}
