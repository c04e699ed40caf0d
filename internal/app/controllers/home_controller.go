package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	pkgauth "github.com/veles/academia/internal/pkg/auth"
)

// HomeController handles the public landing and health endpoints
type HomeController struct {
	db         *pgxpool.Pool
	jwtService *pkgauth.JWTService
}

// NewHomeController creates a new HomeController
func NewHomeController(db *pgxpool.Pool, jwtService *pkgauth.JWTService) *HomeController {
	return &HomeController{db: db, jwtService: jwtService}
}

// areaForRole maps a role to the API area it works in
func areaForRole(role string) string {
	switch models.RoleType(role) {
	case models.RoleAdmin:
		return "/api/v1/students"
	case models.RoleTeacher:
		return "/api/v1/gradebook/courses"
	case models.RoleStudent:
		return "/api/v1/me/enrollments"
	default:
		return "/"
	}
}

// Index describes the service. Callers presenting a valid token also get
// the path of their role's area.
func (c *HomeController) Index(ctx *gin.Context) {
	payload := gin.H{
		"name":    "academia",
		"version": "1.0",
	}

	if token, err := pkgauth.ExtractBearerToken(ctx.GetHeader("Authorization")); err == nil {
		if claims, err := c.jwtService.ValidateAndExtractClaims(token); err == nil {
			payload["area"] = areaForRole(claims.RoleType)
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(payload, "Academic records service"))
}

// Health reports liveness including database reachability
func (c *HomeController) Health(ctx *gin.Context) {
	if err := c.db.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable")))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
}
