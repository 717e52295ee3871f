package web

import (
	"context"
	"strconv"

	"github.com/oarkflow/frame"
	"github.com/oarkflow/frame/middlewares/server/cors"
	"github.com/oarkflow/frame/pkg/common/utils"
	"github.com/oarkflow/frame/pkg/protocol/consts"
	"github.com/oarkflow/frame/pkg/route"
	"github.com/oarkflow/frame/server"
	"github.com/oarkflow/log"

	"github.com/oarkflow/amsearch"
)

type FulltextController struct{}

func NewFulltextController() *FulltextController {
	return &FulltextController{}
}

var controller = NewFulltextController()

func fail(ctx *frame.Context, err error) {
	code := statusOf(err)
	if code == consts.StatusInternalServerError {
		log.Error().Err(err).Str("path", string(ctx.Path())).Msg("Request failed")
	}
	Failed(ctx, code, err.Error(), nil)
}

func (f *FulltextController) Analyze(_ context.Context, ctx *frame.Context) {
	var req AnalyzeRequest
	if err := ctx.Bind(&req); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	terms, err := Analyze(req)
	if err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, utils.H{"terms": terms})
}

func (f *FulltextController) NewEngine(_ context.Context, ctx *frame.Context) {
	var req NewEngine
	if err := ctx.Bind(&req); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	engine, err := CreateEngine(req)
	if err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, engine.Metadata(), "New fulltext index added")
}

func (f *FulltextController) IndexTypes(_ context.Context, ctx *frame.Context) {
	Success(ctx, consts.StatusOK, amsearch.AvailableEngines())
}

func (f *FulltextController) Index(_ context.Context, ctx *frame.Context) {
	var req IndexRequest
	if err := ctx.Bind(&req); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	records, err := Index(ctx.Param("type"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, records)
}

func (f *FulltextController) Search(_ context.Context, ctx *frame.Context) {
	var query Query
	if err := ctx.Bind(&query); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	extra := make(map[string]string)
	ctx.QueryArgs().VisitAll(func(key, value []byte) {
		extra[string(key)] = string(value)
	})
	result, err := Search(ctx.Param("type"), query, extra)
	if err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, result)
}

func (f *FulltextController) Metadata(_ context.Context, ctx *frame.Context) {
	engine, err := amsearch.GetEngine[map[string]any](ctx.Param("type"))
	if err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, engine.Metadata())
}

func (f *FulltextController) TotalDocuments(_ context.Context, ctx *frame.Context) {
	engine, err := amsearch.GetEngine[map[string]any](ctx.Param("type"))
	if err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, utils.H{
		"count": engine.DocumentLen(),
	})
}

func (f *FulltextController) Delete(_ context.Context, ctx *frame.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	engine, err := amsearch.GetEngine[map[string]any](ctx.Param("type"))
	if err != nil {
		fail(ctx, err)
		return
	}
	if err := engine.Delete(&amsearch.DeleteParams[map[string]any]{Id: id}); err != nil {
		fail(ctx, err)
		return
	}
	Success(ctx, consts.StatusOK, utils.H{"id": id}, "Document deleted")
}

func (f *FulltextController) ClearCache(_ context.Context, ctx *frame.Context) {
	engine, err := amsearch.GetEngine[map[string]any](ctx.Param("type"))
	if err != nil {
		fail(ctx, err)
		return
	}
	engine.ClearCache()
	Success(ctx, consts.StatusOK, nil, "Cache cleared...")
}

func SearchRoutes(route route.IRouter) route.IRouter {
	route.POST("/analyze", controller.Analyze)
	route.POST("/new", controller.NewEngine)
	route.GET("/types", controller.IndexTypes)
	route.GET("/count/:type", controller.TotalDocuments)
	route.POST("/index/:type", controller.Index)
	route.GET("/search/:type", controller.Search)
	route.POST("/search/:type", controller.Search)
	route.GET("/metadata/:type", controller.Metadata)
	route.DELETE("/index/:type/:id", controller.Delete)
	route.POST("/cache/:type/clear", controller.ClearCache)
	return route
}

func StartServer(addr string, routePrefix ...string) {
	prefix := "/"
	if len(routePrefix) > 0 {
		prefix = routePrefix[0]
	}
	srv := server.New(
		server.WithDisablePrintRoute(true),
		server.WithHostPorts(addr),
		server.WithHandleMethodNotAllowed(true),
	)
	srv.Use(cors.Default())
	SearchRoutes(srv.Group(prefix))
	log.Info().Str("addr", addr).Msg("Starting search server")
	srv.Spin()
}
