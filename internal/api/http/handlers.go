package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/tracing"
)

// MaxBodySize bounds request bodies. File content is limited separately.
const MaxBodySize = 4 << 20

// Handlers contains all HTTP handlers
type Handlers struct {
	projects ProjectService
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(projects ProjectService, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handlers{
		projects: projects,
		metrics:  metrics,
		logger:   logger.Named("http"),
	}
}

// Register mounts the API routes on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/versions", h.Versions)

	projects := v1.Group("/projects")
	projects.POST("", h.CreateProject)
	projects.GET("", h.ListProjects)
	projects.GET("/:name", h.GetProject)
	projects.DELETE("/:name", h.DeleteProject)
	projects.GET("/:name/download", h.DownloadProject)
	projects.GET("/:name/check", h.CheckProject)
	projects.GET("/:name/find", h.FindNodes)
	projects.GET("/:name/tree/*path", h.ListTree)
	projects.POST("/:name/tree/*path", h.AddNode)
	projects.DELETE("/:name/tree/*path", h.RemoveNode)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": "packstudio",
	}
	if h.metrics != nil {
		body["stats"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// Versions lists the releases a new project can target
func (h *Handlers) Versions(c *gin.Context) {
	versions := h.projects.Versions()
	c.JSON(http.StatusOK, gin.H{
		"versions": versions,
		"count":    len(versions),
	})
}

// CreateProject creates a project from a JSON spec
func (h *Handlers) CreateProject(c *gin.Context) {
	var spec manifest.Spec
	if !bindJSON(c, &spec) {
		return
	}

	doc, err := h.projects.Create(c.Request.Context(), spec)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tracing.WithTrace(c.Request.Context(), h.logger).Info("project created", zap.String("project", doc.Name))
	c.JSON(http.StatusCreated, doc)
}

// ListProjects lists every readable project
func (h *Handlers) ListProjects(c *gin.Context) {
	summaries, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if summaries == nil {
		summaries = []manifest.Summary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": summaries,
		"count":    len(summaries),
	})
}

// GetProject returns a project's metadata including its structure
func (h *Handlers) GetProject(c *gin.Context) {
	doc, err := h.projects.Metadata(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteProject removes a project archive
func (h *Handlers) DeleteProject(c *gin.Context) {
	name := c.Param("name")
	if err := h.projects.Delete(c.Request.Context(), name); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    name,
	})
}

// DownloadProject sends the exported zip as an attachment. The ETag is
// the content checksum, so unchanged projects answer 304.
func (h *Handlers) DownloadProject(c *gin.Context) {
	dl, err := h.projects.Download(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	etag := `"` + dl.Checksum + `"`
	c.Header("ETag", etag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	c.Data(http.StatusOK, dl.ContentType, dl.Data)
}

// CheckProject reports whether the structure matches the archive entries.
// An inconsistent project is a successful check.
func (h *Handlers) CheckProject(c *gin.Context) {
	report, err := h.projects.Verify(c.Request.Context(), c.Param("name"))
	if err != nil && !(report != nil && errors.Is(err, archive.ErrInconsistentArchive)) {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"consistent": report.Consistent(),
		"report":     report,
	})
}

// FindNodes returns the paths matching the pattern query parameter
func (h *Handlers) FindNodes(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		badRequest(c, "pattern is required")
		return
	}

	matches, err := h.projects.Find(c.Request.Context(), c.Param("name"), pattern)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	})
}

// ListTree lists the direct children of a folder
func (h *Handlers) ListTree(c *gin.Context) {
	path := structure.Join(c.Param("path"))

	nodes, err := h.projects.ListDirectory(c.Request.Context(), c.Param("name"), path)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if nodes == nil {
		nodes = []archive.ListedNode{}
	}

	c.JSON(http.StatusOK, gin.H{
		"path":  path,
		"nodes": nodes,
	})
}

type addNodeBody struct {
	Name    string         `json:"name"`
	Type    structure.Kind `json:"type"`
	Alias   string         `json:"alias"`
	Content string         `json:"content"`
}

// AddNode adds a folder or file under the wildcard path
func (h *Handlers) AddNode(c *gin.Context) {
	var body addNodeBody
	if !bindJSON(c, &body) {
		return
	}
	if body.Name == "" {
		badRequest(c, "name is required")
		return
	}

	req := project.NodeRequest{
		Path:    structure.Join(c.Param("path")),
		Name:    body.Name,
		Type:    body.Type,
		Alias:   body.Alias,
		Content: body.Content,
	}
	if err := h.projects.AddNode(c.Request.Context(), c.Param("name"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"path":    structure.Join(req.Path, req.Name),
	})
}

// RemoveNode removes the node at the wildcard path
func (h *Handlers) RemoveNode(c *gin.Context) {
	path := structure.Join(c.Param("path"))
	if path == "" {
		badRequest(c, "cannot remove the root")
		return
	}

	if err := h.projects.RemoveNode(c.Request.Context(), c.Param("name"), path); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    path,
	})
}

// bindJSON decodes a bounded body, answering 400 on failure
func bindJSON(c *gin.Context, v interface{}) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodySize)
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
