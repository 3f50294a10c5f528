package dto

import (
	"github.com/shopspring/decimal"

	"tarifario/internal/core/id"
	"tarifario/internal/domain/catalogs/article"
)

// --- Article ---

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" binding:"required"`
	Barcode      *string         `json:"barcode"`
	Description  *string         `json:"description"`
	Presentation *string         `json:"presentation"`
	GroupID      *id.ID          `json:"groupId"`
	LineID       *id.ID          `json:"lineId"`
	Stock        decimal.Decimal `json:"stock"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateArticleRequest) ToEntity() *article.Article {
	item := article.NewArticle(r.Code, r.Name)
	item.Barcode = r.Barcode
	item.Description = r.Description
	item.Presentation = r.Presentation
	item.GroupID = r.GroupID
	item.LineID = r.LineID
	item.Stock = r.Stock
	return item
}

// UpdateArticleRequest is the request body for updating an article.
type UpdateArticleRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" binding:"required"`
	Barcode      *string         `json:"barcode"`
	Description  *string         `json:"description"`
	Presentation *string         `json:"presentation"`
	GroupID      *id.ID          `json:"groupId"`
	LineID       *id.ID          `json:"lineId"`
	Stock        decimal.Decimal `json:"stock"`
	Version      int             `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateArticleRequest) ApplyTo(item *article.Article) {
	item.Code = r.Code
	item.Name = r.Name
	item.Barcode = r.Barcode
	item.Description = r.Description
	item.Presentation = r.Presentation
	item.GroupID = r.GroupID
	item.LineID = r.LineID
	item.Stock = r.Stock
	item.Version = r.Version
}

// ArticleResponse is the response body for an article.
type ArticleResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Barcode      *string         `json:"barcode,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Presentation *string         `json:"presentation,omitempty"`
	GroupID      *id.ID          `json:"groupId,omitempty"`
	LineID       *id.ID          `json:"lineId,omitempty"`
	Stock        decimal.Decimal `json:"stock"`
	State        int             `json:"state"`
	DeletionMark bool            `json:"deletionMark"`
	Version      int             `json:"version"`
}

// FromArticle creates response DTO from domain entity.
func FromArticle(item *article.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		Barcode:      item.Barcode,
		Description:  item.Description,
		Presentation: item.Presentation,
		GroupID:      item.GroupID,
		LineID:       item.LineID,
		Stock:        item.Stock,
		State:        int(item.State),
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

// --- Group / Line classifiers ---

// CreateClassifierRequest is the shared request body for article groups and lines.
type CreateClassifierRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToGroup converts DTO to an article group.
func (r *CreateClassifierRequest) ToGroup() *article.Group {
	item := article.NewGroup(r.Code, r.Name)
	item.Description = r.Description
	return item
}

// ToLine converts DTO to an article line.
func (r *CreateClassifierRequest) ToLine() *article.Line {
	item := article.NewLine(r.Code, r.Name)
	item.Description = r.Description
	return item
}

// UpdateClassifierRequest is the shared update body for article groups and lines.
type UpdateClassifierRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyToGroup applies update DTO to an existing group.
func (r *UpdateClassifierRequest) ApplyToGroup(item *article.Group) {
	item.Code = r.Code
	item.Name = r.Name
	item.Description = r.Description
	item.Version = r.Version
}

// ApplyToLine applies update DTO to an existing line.
func (r *UpdateClassifierRequest) ApplyToLine(item *article.Line) {
	item.Code = r.Code
	item.Name = r.Name
	item.Description = r.Description
	item.Version = r.Version
}

// ClassifierResponse is the shared response body for groups and lines.
type ClassifierResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	State        int     `json:"state"`
	DeletionMark bool    `json:"deletionMark"`
	Version      int     `json:"version"`
}

// FromGroup creates response DTO from an article group.
func FromGroup(item *article.Group) *ClassifierResponse {
	return &ClassifierResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		Description:  item.Description,
		State:        int(item.State),
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

// FromLine creates response DTO from an article line.
func FromLine(item *article.Line) *ClassifierResponse {
	return &ClassifierResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		Description:  item.Description,
		State:        int(item.State),
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}
