package types

// ListSubscriptionsQuery holds the query parameters of GET /api/v1/subscriptions
type ListSubscriptionsQuery struct {
	MediaType string `form:"media_type" binding:"omitempty,oneof=tv movie anime" example:"tv"`
	Status    string `form:"status" binding:"omitempty,oneof=active disabled" example:"active"`
	Page      int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// DeleteSubscriptionQuery holds the query parameters of DELETE /api/v1/subscriptions/{id}
type DeleteSubscriptionQuery struct {
	DeleteFiles *bool `form:"delete_files" example:"false"`
}
