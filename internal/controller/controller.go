package controller

import (
	"bytes"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"device-event-pipeline/internal/model"
	"device-event-pipeline/internal/service"
)

type PipelineController interface {
	Ingest(c *fiber.Ctx) error
	Stats(c *fiber.Ctx) error
	StatsHTML(c *fiber.Ctx) error
}

// pipelineController exposes HTTP handlers for the ingest and query stages.
type pipelineController struct {
	ingestService service.IngestService
	queryService  service.QueryService
}

// NewPipelineController builds a PipelineController.
func NewPipelineController(ingestSvc service.IngestService, querySvc service.QueryService) PipelineController {
	return &pipelineController{ingestService: ingestSvc, queryService: querySvc}
}

// Ingest accepts a JSON batch of device events.
func (h *pipelineController) Ingest(c *fiber.Ctx) error {
	result, err := h.ingestService.Ingest(c.Context(), c.Body(), correlationID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(result)
}

// Stats returns the aggregates for one date as a JSON array.
func (h *pipelineController) Stats(c *fiber.Ctx) error {
	records, err := h.queryService.AggregatesForDate(c.Context(), c.Query("date"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(records)
}

// StatsHTML renders the same aggregates as an HTML table.
func (h *pipelineController) StatsHTML(c *fiber.Ctx) error {
	date := c.Query("date")

	records, err := h.queryService.AggregatesForDate(c.Context(), date)
	if err != nil {
		return errorResponse(c, err)
	}

	var buf bytes.Buffer
	if err := statsPage.Execute(&buf, statsPageData{Date: date, Records: records}); err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return c.Send(buf.Bytes())
}

// correlationID propagates the caller's request id when given, otherwise
// generates one for this call.
func correlationID(c *fiber.Ctx) string {
	if id := c.Get(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return uuid.New().String()
}

func errorResponse(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

type statsPageData struct {
	Date    string
	Records []model.AggregateRecord
}

var statsPage = template.Must(template.New("stats").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8"/>
	<title>Aggregates {{.Date}}</title>
</head>
<body>
	<h2>Aggregates for {{.Date}}</h2>
	<table border="1" cellpadding="6" cellspacing="0">
		<thead><tr><th>Date</th><th>Type</th><th>State</th><th>Count</th></tr></thead>
		<tbody>
		{{- if .Records}}
		{{- range .Records}}
			<tr><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.State}}</td><td>{{.Count}}</td></tr>
		{{- end}}
		{{- else}}
			<tr><td colspan="4">No data</td></tr>
		{{- end}}
		</tbody>
	</table>
</body>
</html>
`))
