package api

import (
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/api/middleware"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/database"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/ask").
			To(handler.Ask).
			Doc("Answer a clinical question through the full guardrail pipeline").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ask"}).
			Reads(models.AskRequest{}).
			Writes(models.PipelineResult{}).
			Returns(200, "OK", models.PipelineResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/validate").
			To(handler.Validate).
			Doc("Classify an already-produced answer").
			Metadata(restfulspec.KeyOpenAPITags, []string{"validate"}).
			Reads(models.ValidationRequest{}).
			Writes(models.PipelineResult{}).
			Returns(200, "OK", models.PipelineResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/validate/check/{check_name}").
			To(handler.ValidateSingleCheck).
			Doc("Run a single guardrail check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"validate"}).
			Param(ws.PathParameter("check_name", "Check name (direct_prescription, disclaimer, citation, high_risk, contraindication)").DataType("string")).
			Reads(models.ValidationRequest{}).
			Writes(models.ContentValidationResult{}).
			Returns(200, "OK", models.ContentValidationResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Check Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/reviews/pending").
			To(handler.PendingReviews).
			Doc("List decisions waiting for human review").
			Metadata(restfulspec.KeyOpenAPITags, []string{"reviews"}).
			Param(ws.QueryParameter("limit", "Maximum number of records (default: 50)").DataType("integer").Required(false)).
			Writes([]database.AuditRecord{}).
			Returns(200, "OK", []database.AuditRecord{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
