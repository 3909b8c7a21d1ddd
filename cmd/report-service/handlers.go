package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/export"
	"github.com/MikeMC777/storefront/internal/report"
)

type httpError struct {
	Error string `json:"error"`
}

// reportHandler godoc
// @Summary  Download a report
// @Tags     reports
// @Produce  text/csv
// @Param    kind      path  string true  "orders | products | customers | reviews | bookings | sales | popularity | comprehensive | sales-analytics"
// @Param    timeframe query string false "all | today | week | month | quarter | year"
// @Param    reviews   query string false "all | positive | negative"
// @Param    format    query string false "csv | xlsx"
// @Success  200 {file} file
// @Failure  400 {object} httpError
// @Failure  404 {object} httpError
// @Security BasicAuth
// @Router   /reports/{kind} [get]
func reportHandler(exp *export.Exporter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p export.Params
		if err := c.ShouldBindQuery(&p); err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: "invalid query"})
			return
		}
		req, err := export.Parse(c.Param("kind"), p)
		switch {
		case errors.Is(err, report.ErrUnknownKind):
			c.JSON(http.StatusNotFound, httpError{Error: err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}

		f, err := exp.Export(c.Request.Context(), req)
		if err != nil {
			log.Error("export", zap.String("kind", string(req.Kind)), zap.Error(err))
			c.JSON(http.StatusBadGateway, httpError{Error: "could not load report data"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
		c.Data(http.StatusOK, f.ContentType, f.Body)
	}
}

// kindsHandler lists the available report kinds.
func kindsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"kinds": report.Kinds})
	}
}
