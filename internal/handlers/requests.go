package handlers

// Optional fields are pointers so an absent field can be told apart from
// an empty one.

type createPromoRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type updatePromoRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

type addPrizeRequest struct {
	Description string `json:"description" binding:"required"`
}
