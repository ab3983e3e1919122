package router

import (
	"github.com/labstack/echo/v4"

	"school-api/internal/cache"
	"school-api/internal/database"
	"school-api/internal/handler"
	"school-api/internal/handler/auth"
	"school-api/internal/handler/courses"
	"school-api/internal/handler/students"
	"school-api/internal/handler/teachers"
	"school-api/internal/middleware"
	"school-api/internal/worker"
)

// Setup registers every route and injects the shared dependencies.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool) {
	e.GET("/healthz", handler.HealthHandler(db, rdb))

	apiAuth := e.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(db))
	apiAuth.POST("/login", auth.LoginHandler(db))
	apiAuth.GET("/users", auth.ListUsersHandler(db), middleware.RequireAuth)

	apiCourses := e.Group("/courses")
	apiCourses.POST("", courses.CreateCourseHandler(db, rdb, wp))
	apiCourses.GET("", courses.ListCoursesHandler(db, rdb))
	apiCourses.GET("/:id", courses.GetCourseHandler(db))
	apiCourses.PUT("/:id", courses.UpdateCourseHandler(db))
	apiCourses.DELETE("/:id", courses.DeleteCourseHandler(db, rdb, wp))

	apiTeachers := e.Group("/teachers")
	apiTeachers.POST("", teachers.CreateTeacherHandler(db, rdb, wp))
	apiTeachers.GET("", teachers.ListTeachersHandler(db, rdb))
	apiTeachers.GET("/:id", teachers.GetTeacherHandler(db))
	apiTeachers.PUT("/:id", teachers.UpdateTeacherHandler(db))
	apiTeachers.DELETE("/:id", teachers.DeleteTeacherHandler(db, rdb, wp))

	apiStudents := e.Group("/students")
	apiStudents.POST("", students.CreateStudentHandler(db, rdb, wp))
	apiStudents.GET("", students.ListStudentsHandler(db, rdb))
	apiStudents.GET("/:id", students.GetStudentHandler(db))
	apiStudents.PUT("/:id", students.UpdateStudentHandler(db))
	apiStudents.DELETE("/:id", students.DeleteStudentHandler(db, rdb, wp))
}
