package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reservas-api/internal/application/auth"
	"github.com/jhoicas/reservas-api/internal/application/booking"
	"github.com/jhoicas/reservas-api/internal/application/usecase"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	RoleUC    *usecase.RoleUseCase
	RoomUC    *usecase.RoomUseCase
	BookingUC *booking.BookingUseCase
	AdminUC   *usecase.AdminUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Registro y login (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/users/register", authHandler.Register)
	api.Post("/users/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido; cambiar rol y eliminar exigen canChangeRole)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", RequireCapability(policy.CanChangeRole), userHandler.UpdateRole)
	users.Delete("/:id", RequireCapability(policy.CanChangeRole), userHandler.Delete)

	// Roles (protegido; crear exige canChangeRole)
	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Post("/", RequireCapability(policy.CanChangeRole), roleHandler.Create)

	// Rooms (protegido; mutaciones exigen canManageRooms)
	rooms := protected.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC, deps.BookingUC)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/:id", roomHandler.GetByID)
	rooms.Get("/:id/availability", roomHandler.Availability)
	rooms.Post("/", RequireCapability(policy.CanManageRooms), roomHandler.Create)
	rooms.Put("/:id", RequireCapability(policy.CanManageRooms), roomHandler.Update)
	rooms.Delete("/:id", RequireCapability(policy.CanManageRooms), roomHandler.Delete)

	// Bookings (protegido; dueño-o-capacidad se decide en el caso de uso)
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Put("/:id", bookingHandler.Update)
	bookings.Delete("/:id", bookingHandler.Delete)

	// Admin (protegido; exige canResetData)
	admin := protected.Group("/admin")
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Post("/reset", RequireCapability(policy.CanResetData), adminHandler.ResetData)
}
