package dto

import (
	"shulin/internal/models"
)

type AboutResponse struct {
	ID           uint   `json:"id"`
	Body         string `json:"body"`
	CreatedTime  string `json:"created_time"`
	ModifiedTime string `json:"modified_time"`
	BodyHTML     string `json:"body_html"`
}

func NewAboutResponse(a models.About, bodyHTML string) AboutResponse {
	return AboutResponse{
		ID:           a.ID,
		Body:         a.Body,
		CreatedTime:  a.CreatedAt.Format(TimeLayout),
		ModifiedTime: a.UpdatedAt.Format(TimeLayout),
		BodyHTML:     bodyHTML,
	}
}
