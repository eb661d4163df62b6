package routes

import (
	"freework/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathPayment = "/payment"

func addFreeworkRoutes(rg *gin.RouterGroup, milestoneHandler *handlers.MilestoneHandler, paymentHandler *handlers.PaymentHandler) {
	rg.POST("/milestone", milestoneHandler.CreateMilestone)
	rg.POST("/milestone/submit", milestoneHandler.SubmitWork)
	rg.GET("/milestones/:projectId", milestoneHandler.ListByProject)

	payment := rg.Group(PathPayment)
	{
		payment.POST("/deposit", paymentHandler.Deposit)
		payment.POST("/milestone/approve", paymentHandler.ApproveMilestone)
		payment.POST("/milestone/reject", paymentHandler.RejectMilestone)
		payment.POST("/milestone/fund", paymentHandler.FundMilestone)
		payment.POST("/withdraw", paymentHandler.Withdraw)
	}
}
