package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/service" // Points orchestration

	"github.com/gin-gonic/gin" // Gin web framework
)

// GrantRequest represents a point-grant request
type GrantRequest struct {
	UserID string `json:"userId" binding:"required"` // Target user, must be non-empty
	Amount int64  `json:"amount"`                    // Signed amount; zero and negative are legal
	Reason string `json:"reason"`                    // Optional free text
}

// AmendReasonRequest represents a reason edit on an existing grant
type AmendReasonRequest struct {
	Reason string `json:"reason"` // New free text
}

// GrantHandler appends a grant and returns the persisted record
func GrantHandler(svc *service.PointsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrantRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		rec, err := svc.Grant(c.Request.Context(), req.UserID, req.Amount, req.Reason)
		if err != nil {
			// Empty user id is the caller's fault, everything else is ours
			if errors.Is(err, service.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Grant failed"})
			return
		}
		c.JSON(http.StatusOK, rec) // Return the persisted record
	}
}

// GetBalanceHandler returns the user's current total
func GetBalanceHandler(svc *service.PointsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		up, err := svc.GetBalance(c.Request.Context(), c.Param("userId"))
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Balance lookup failed"})
			return
		}
		// Absent means the user never received a grant, or was erased
		if up == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User points not found"})
			return
		}
		c.JSON(http.StatusOK, up) // Return the aggregate row
	}
}

// LeaderboardHandler returns the top users by descending total
func LeaderboardHandler(svc *service.PointsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.Leaderboard(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Leaderboard query failed"})
			return
		}
		c.JSON(http.StatusOK, entries) // Return the snapshot, possibly empty
	}
}

// AmendReasonHandler replaces the reason on an existing grant
func AmendReasonHandler(svc *service.PointsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64) // Parse the record id
		if err != nil {
			// If not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record id"})
			return
		}
		var req AmendReasonRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		rec, err := svc.AmendReason(c.Request.Context(), id, req.Reason)
		if err != nil {
			// Unknown id is not found, everything else is ours
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Point record not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Amend failed"})
			return
		}
		c.JSON(http.StatusOK, rec) // Return the updated record
	}
}

// EraseUserHandler deletes all point data for a user
func EraseUserHandler(svc *service.PointsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.EraseUser(c.Request.Context(), c.Param("userId")); err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erase failed"})
			return
		}
		c.Status(http.StatusNoContent) // Erasure is idempotent, always succeeds
	}
}
