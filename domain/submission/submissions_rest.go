package submission

import (
	"net/http"
	"projectform/common"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/jinzhu/gorm"
)

var (
	PathSubmissions = "/v1/submissions"

	DefaultController = NewAdmissionController()

	SubmitFunc = DefaultController.Submit
	LatestFunc = DefaultController.Latest
	ResetFunc  = DefaultController.Reset
)

type ExistsQuery struct {
	EnrollmentNumber string `form:"enrollment" binding:"required,len=12,numeric"`
}

type ExistsResult struct {
	Exists bool `json:"exists"`
}

func RegisterSubmissionsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathSubmissions, middleWares...)
	g.POST("", handleCreateSubmission)
	g.GET("", handleQueryExists)
	g.GET("latest", handleQueryLatest)
	g.DELETE("latest", handleReset)
}

func handleCreateSubmission(c *gin.Context) {
	creation := SubmissionCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	result, err := SubmitFunc(c.Request.Context(), creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleQueryExists(c *gin.Context) {
	query := ExistsQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	exists, err := ExistsSubmissionFunc(c.Request.Context(), query.EnrollmentNumber)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &ExistsResult{Exists: exists})
}

func handleQueryLatest(c *gin.Context) {
	status := LatestFunc()
	if status == nil {
		panic(gorm.ErrRecordNotFound)
	}
	c.JSON(http.StatusOK, status)
}

func handleReset(c *gin.Context) {
	ResetFunc()
	c.Status(http.StatusNoContent)
}
