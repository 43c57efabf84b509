package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register/student", handler.RegisterStudent)
		authGroup.POST("/login", handler.Login)

		authed := authGroup.Group("", handler.Authenticate())
		authed.POST("/register/admin", handler.RegisterAdmin)
		authed.POST("/logout", handler.Logout)
		authed.GET("/me", handler.Me)
		authed.PUT("/profile", handler.UpdateProfile)
		authed.PUT("/change-password", handler.ChangePassword)
	}

	projects := v1.Group("/projects")
	{
		projects.GET("", handler.ListProjects)
		projects.GET("/:id", handler.GetProject)

		manage := projects.Group("", handler.Authenticate(),
			RequireUserType(auth.UserTypeAdmin), RequirePermission(model.PermManageProjects))
		manage.POST("", handler.CreateProject)
		manage.PUT("/:id", handler.UpdateProject)
		manage.POST("/:id/assign", handler.AssignStudent)
	}

	students := v1.Group("/students", handler.Authenticate(), RequireUserType(auth.UserTypeStudent))
	{
		students.GET("/dashboard", handler.StudentDashboard)
		students.GET("/projects", handler.AvailableProjects)
	}

	submissions := v1.Group("/submissions", handler.Authenticate())
	{
		submissions.GET("", handler.ListSubmissions)
		submissions.GET("/:id", handler.GetSubmission)

		own := submissions.Group("", RequireUserType(auth.UserTypeStudent))
		own.POST("", handler.CreateSubmission)
		own.POST("/:id/files", handler.UploadSubmissionFiles)
		own.POST("/:id/submit", handler.SubmitSubmission)
		own.POST("/:id/resubmit", handler.ResubmitSubmission)

		review := submissions.Group("", RequireUserType(auth.UserTypeAdmin),
			RequirePermission(model.PermReviewSubmissions))
		review.POST("/:id/approve", handler.ApproveSubmission)
		review.POST("/:id/reject", handler.RejectSubmission)
		review.POST("/:id/request-revision", handler.RequestRevision)
	}

	timesheets := v1.Group("/timesheets", handler.Authenticate())
	{
		timesheets.GET("", handler.ListTimesheets)

		own := timesheets.Group("", RequireUserType(auth.UserTypeStudent))
		own.POST("/:id/breaks/start", handler.StartBreak)
		own.POST("/:id/breaks/end", handler.EndBreak)

		approve := timesheets.Group("", RequireUserType(auth.UserTypeAdmin),
			RequirePermission(model.PermApproveTimesheets))
		approve.POST("/:id/approve", handler.ApproveTimesheet)
		approve.POST("/:id/reject", handler.RejectTimesheet)
	}

	admin := v1.Group("/admin", handler.Authenticate(), RequireUserType(auth.UserTypeAdmin))
	{
		admin.GET("/dashboard", handler.AdminDashboard)
		admin.GET("/students", RequirePermission(model.PermManageStudents), handler.ListStudents)
		admin.GET("/reports/timesheets", RequirePermission(model.PermGenerateReports), handler.TimesheetReport)
	}

	files := v1.Group("/files", handler.Authenticate())
	{
		files.GET("/:category/:filename", handler.DownloadFile)

		upload := files.Group("/upload", RequireUserType(auth.UserTypeStudent))
		upload.POST("/resume", handler.UploadResume)
		upload.POST("/profile-pic", handler.UploadProfilePic)
	}
}
