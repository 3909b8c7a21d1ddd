// Package export turns a report request into a downloadable file.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/review"
	"github.com/MikeMC777/storefront/internal/source"
)

var ErrBadRequest = errors.New("bad report request")

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Params are the raw query parameters of a report request.
type Params struct {
	TimeFrame string `mapstructure:"timeframe" form:"timeframe"`
	Reviews   string `mapstructure:"reviews" form:"reviews"`
	Format    string `mapstructure:"format" form:"format"`
}

type Request struct {
	Kind    report.Kind
	Options report.Options
	Format  string
}

// Parse validates kind and p. An unknown kind wraps report.ErrUnknownKind,
// anything else malformed wraps ErrBadRequest.
func Parse(kind string, p Params) (Request, error) {
	k, ok := report.ParseKind(strings.ToLower(strings.TrimSpace(kind)))
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", report.ErrUnknownKind, kind)
	}
	tf, ok := report.ParseTimeFrame(p.TimeFrame)
	if !ok {
		return Request{}, fmt.Errorf("%w: timeframe %q", ErrBadRequest, p.TimeFrame)
	}
	rk, ok := review.ParseKind(p.Reviews)
	if !ok {
		return Request{}, fmt.Errorf("%w: reviews %q", ErrBadRequest, p.Reviews)
	}
	format := strings.ToLower(strings.TrimSpace(p.Format))
	switch format {
	case "":
		format = FormatCSV
	case FormatCSV, FormatXLSX:
	default:
		return Request{}, fmt.Errorf("%w: format %q", ErrBadRequest, p.Format)
	}
	return Request{Kind: k, Options: report.Options{TimeFrame: tf, Reviews: rk}, Format: format}, nil
}

// File is a rendered report ready to be sent.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type Exporter struct {
	src source.Source
	agg *report.Aggregator
	log *zap.Logger
}

func New(src source.Source, agg *report.Aggregator, log *zap.Logger) *Exporter {
	return &Exporter{src: src, agg: agg, log: log.Named("export")}
}

func (e *Exporter) Export(ctx context.Context, req Request) (*File, error) {
	in, err := source.Load(ctx, e.src, req.Kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.Kind, err)
	}
	doc, err := e.agg.Build(req.Kind, in, req.Options)
	if err != nil {
		return nil, err
	}

	f := &File{Name: report.FileNameFor(req.Kind, req.Options.TimeFrame, e.agg.Now(), req.Format)}
	switch req.Format {
	case FormatXLSX:
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, doc); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
		f.ContentType = report.ContentTypeXLSX
		f.Body = buf.Bytes()
	default:
		f.ContentType = report.ContentTypeCSV
		f.Body = []byte(doc.CSV())
	}
	e.log.Info("rendered",
		zap.String("kind", string(req.Kind)),
		zap.String("timeframe", string(req.Options.TimeFrame)),
		zap.String("file", f.Name),
		zap.Int("bytes", len(f.Body)),
	)
	return f, nil
}
