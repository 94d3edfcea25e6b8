package handler

import (
	"Sabzee/internal/service"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID returns the authenticated caller's id set by the auth
// middleware.
func currentUserID(c *gin.Context) primitive.ObjectID {
	return c.MustGet("user_id").(primitive.ObjectID)
}

func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	return parseIDParamOr(c, name, service.ErrParamInvalid)
}

// parseIDParamOr returns notFound for an id that does not parse, so an
// unparseable id reads the same as a miss.
func parseIDParamOr(c *gin.Context, name string, notFound error) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}

// openUploads collects the "images" multipart files. The returned close
// function must be called after the files are consumed.
func openUploads(c *gin.Context) ([]*service.ImageUpload, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, nil
	}

	files := form.File["images"]
	uploads := make([]*service.ImageUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		opened = append(opened, f)
		uploads = append(uploads, &service.ImageUpload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Reader:   f,
		})
	}

	return uploads, closeAll, nil
}
