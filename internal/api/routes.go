package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
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
		Route(ws.GET("/models").
			To(handler.ListModels).
			Doc("List the selectable models").
			Metadata(restfulspec.KeyOpenAPITags, []string{"catalog"}).
			Writes(ModelsResponse{}).
			Returns(200, "OK", ModelsResponse{}))

	ws.
		Route(ws.GET("/presets").
			To(handler.ListPresets).
			Doc("List the system prompt presets").
			Metadata(restfulspec.KeyOpenAPITags, []string{"catalog"}).
			Writes(PresetsResponse{}).
			Returns(200, "OK", PresetsResponse{}))

	ws.
		Route(ws.POST("/sessions").
			To(handler.RunSession).
			Doc("Run a sampling session. Consistency is 100*(n-unique+1)/n, so the lowest possible score is 100/n.").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Reads(models.SessionRequest{}).
			Writes(models.SessionResult{}).
			Returns(200, "OK", models.SessionResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Completion Call Failed", middleware.ErrorResponse{}).
			Returns(504, "Run Timeout", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/stream").
			To(handler.RunSessionStream).
			Consumes(restful.MIME_JSON).
			Produces("text/event-stream").
			Doc("Run a sampling session streaming progress events").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Reads(models.SessionRequest{}).
			Returns(200, "OK", nil).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/compare").
			To(handler.CompareModels).
			Doc("Run the same session against several models").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Reads(CompareRequest{}).
			Writes(CompareResponse{}).
			Returns(200, "OK", CompareResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Completion Call Failed", middleware.ErrorResponse{}).
			Returns(504, "Run Timeout", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the OpenAPI document for every registered web service.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/v1/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}

	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Consistency Agent API",
			Description: "Samples a model repeatedly with identical parameters and scores how consistent the outputs are",
			Version:     Version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "catalog", Description: "Models and presets"}},
		{TagProps: spec.TagProps{Name: "sessions", Description: "Sampling sessions"}},
	}
}
