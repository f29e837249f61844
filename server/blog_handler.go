package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"Inshpho/logger"
	"Inshpho/model"
)

const maxImageSize = 10 << 20

// ListBlogsHandler handles GET /api/blogs, newest first.
func (h *APIHandler) ListBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		logger.Error("[Blogs] list failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Error fetching blogs")
		return
	}
	if blogs == nil {
		blogs = []*model.Blog{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

// CreateBlogHandler handles POST /api/blogs.
func (h *APIHandler) CreateBlogHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Complete() {
		writeError(w, http.StatusBadRequest, "title, description and image are required")
		return
	}

	blog := model.NewBlog(req, time.Now())
	if err := h.blogs.Create(r.Context(), blog); err != nil {
		logger.Error("[Blogs] create failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Error creating blog")
		return
	}

	logger.Info("[Blogs] created", logger.String("id", blog.ID))
	writeJSON(w, http.StatusCreated, blog)
}

// UploadBlogImageHandler handles POST /api/blogs/images with a multipart
// "image" field and returns the public URL of the stored object.
func (h *APIHandler) UploadBlogImageHandler(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(1<<20))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	obj, err := h.images.PutImage(r.Context(), header.Filename, file, header.Size, contentType)
	if err != nil {
		logger.Error("[Blogs] image upload failed",
			logger.String("filename", header.Filename),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Error uploading image")
		return
	}

	logger.Info("[Blogs] image uploaded",
		logger.String("key", obj.Key),
		logger.Int64("size", obj.Size))
	writeJSON(w, http.StatusCreated, map[string]string{"url": obj.URL, "key": obj.Key})
}
