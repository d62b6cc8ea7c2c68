package transport

import (
	"github.com/altamira-viajes/backoffice/controllers"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.AgencyService, e *echo.Echo, secured *echo.Group, logMw echo.MiddlewareFunc) {
	e.POST("/auth", controllers.NewAuthController(svc).Auth, logMw)
	if svc.Config.AllowUserCreation {
		e.POST("/users", controllers.NewUserController(svc).CreateUser, logMw)
	}

	secured.GET("/users/me", controllers.NewUserController(svc).GetMe)

	clientCtrl := controllers.NewClientController(svc)
	secured.POST("/clients", clientCtrl.CreateClient)
	secured.GET("/clients", clientCtrl.ListClients)
	secured.GET("/clients/:id", clientCtrl.GetClient)

	tourCtrl := controllers.NewTourController(svc)
	secured.POST("/tours", tourCtrl.CreateTour)
	secured.GET("/tours", tourCtrl.ListTours)

	reservationCtrl := controllers.NewReservationController(svc)
	secured.POST("/reservations", reservationCtrl.CreateReservation)
	secured.GET("/reservations", reservationCtrl.ListReservations)
	secured.GET("/reservations/:id", reservationCtrl.GetReservation)
	secured.PUT("/reservations/:id/status", reservationCtrl.UpdateStatus)
	secured.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)
	secured.POST("/reservations/:id/clients", reservationCtrl.AttachClient)
	secured.POST("/reservations/:id/documents", reservationCtrl.AttachDocument)

	accountCtrl := controllers.NewAccountController(svc)
	secured.POST("/reservations/:id/account", accountCtrl.OpenAccount)
	secured.GET("/reservations/:id/account", accountCtrl.GetAccountByReservation)
	secured.GET("/accounts/:id", accountCtrl.GetAccount)
	secured.POST("/accounts/:id/recompute", accountCtrl.Recompute)
	secured.POST("/accounts/:id/cancel", accountCtrl.CancelAccount)
	secured.POST("/accounts/:id/reschedule", accountCtrl.RescheduleAccount)
	secured.POST("/installments/:id/cancel", accountCtrl.CancelInstallment)

	paymentCtrl := controllers.NewPaymentController(svc)
	secured.POST("/installments/:id/payments", paymentCtrl.ApplyPayment)
	secured.GET("/accounts/:id/payments", paymentCtrl.ListAccountPayments)
	secured.GET("/payments/receipts/:number", paymentCtrl.GetByReceiptNumber)
	secured.PUT("/payments/:id/metadata", paymentCtrl.UpdateMetadata)

	reportCtrl := controllers.NewReportController(svc)
	secured.GET("/reports/financial", reportCtrl.FinancialReport)
	secured.GET("/reports/expenses", reportCtrl.ExpenseReport)

	expenseCtrl := controllers.NewExpenseController(svc)
	secured.POST("/expenses", expenseCtrl.CreateExpense)
	secured.GET("/expenses", expenseCtrl.ListExpenses)
	secured.GET("/expenses/:id", expenseCtrl.GetExpense)
	secured.POST("/expenses/:id/pay", expenseCtrl.MarkPaid)
	secured.POST("/expenses/:id/cancel", expenseCtrl.CancelExpense)
}
