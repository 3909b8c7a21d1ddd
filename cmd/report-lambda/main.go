package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/app"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/export"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/logging"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/source"
)

type handler struct {
	exp       *export.Exporter
	adminUser string
	adminHash string
	log       *zap.Logger
}

func jsonResponse(code int, msg string) events.APIGatewayProxyResponse {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}

func (h *handler) handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	hdr := http.Header{}
	for k, v := range req.Headers {
		hdr.Set(k, v)
	}
	if !httpx.CheckBasic(&http.Request{Header: hdr}, h.adminUser, h.adminHash) {
		resp := jsonResponse(http.StatusUnauthorized, "unauthorized")
		resp.Headers["WWW-Authenticate"] = `Basic realm="admin"`
		return resp, nil
	}

	var p export.Params
	if err := mapstructure.Decode(req.QueryStringParameters, &p); err != nil {
		return jsonResponse(http.StatusBadRequest, "invalid query"), nil
	}
	kind := req.PathParameters["kind"]
	if kind == "" {
		kind = req.QueryStringParameters["kind"]
	}
	r, err := export.Parse(kind, p)
	switch {
	case errors.Is(err, report.ErrUnknownKind):
		return jsonResponse(http.StatusNotFound, err.Error()), nil
	case err != nil:
		return jsonResponse(http.StatusBadRequest, err.Error()), nil
	}

	f, err := h.exp.Export(ctx, r)
	if err != nil {
		h.log.Error("export", zap.String("kind", kind), zap.Error(err))
		return jsonResponse(http.StatusBadGateway, "could not load report data"), nil
	}
	resp := events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":        f.ContentType,
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.Name),
		},
	}
	if r.Format == export.FormatXLSX {
		resp.Body = base64.StdEncoding.EncodeToString(f.Body)
		resp.IsBase64Encoded = true
	} else {
		resp.Body = string(f.Body)
	}
	return resp, nil
}

func main() {
	cfg := config.Load()
	log := logging.New(logging.Options{Env: cfg.Env, Level: cfg.LogLevel}).Named("report-lambda")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("init", zap.Error(err))
	}
	defer a.Close()

	var src source.Source = source.Repos{OrderRepo: a.Orders, ProductRepo: a.Products, ReviewRepo: a.Reviews, BookingSvc: a.Bookings}
	if cfg.CatalogBaseURL != "" {
		src = source.NewHTTP(cfg.CatalogBaseURL, cfg.AdminUser, cfg.AdminPass)
	}
	h := &handler{
		exp:       export.New(src, report.NewAggregator(), log),
		adminUser: cfg.AdminUser,
		adminHash: a.AdminHash,
		log:       log,
	}
	lambda.Start(h.handle)
}
