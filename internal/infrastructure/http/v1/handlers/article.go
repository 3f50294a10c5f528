package handlers

import (
	"tarifario/internal/domain"
	"tarifario/internal/domain/catalogs/article"
	"tarifario/internal/infrastructure/http/v1/dto"
)

// ArticleHTTPHandler is the concrete catalog handler for articles.
type ArticleHTTPHandler = CatalogHandler[
	*article.Article,
	dto.CreateArticleRequest,
	dto.UpdateArticleRequest,
]

// NewArticleHandler wires the generic catalog handler for articles.
func NewArticleHandler(base *BaseHandler, service *article.Service) *ArticleHTTPHandler {
	config := CatalogHandlerConfig[
		*article.Article,
		dto.CreateArticleRequest,
		dto.UpdateArticleRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "article",
		MapCreateDTO: func(req dto.CreateArticleRequest) *article.Article {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateArticleRequest, existing *article.Article) *article.Article {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *article.Article) any {
			return dto.FromArticle(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

// GroupHTTPHandler is the concrete catalog handler for article groups.
type GroupHTTPHandler = CatalogHandler[
	*article.Group,
	dto.CreateClassifierRequest,
	dto.UpdateClassifierRequest,
]

// NewGroupHandler wires the generic catalog handler for article groups.
func NewGroupHandler(base *BaseHandler, service *domain.CatalogService[*article.Group]) *GroupHTTPHandler {
	config := CatalogHandlerConfig[
		*article.Group,
		dto.CreateClassifierRequest,
		dto.UpdateClassifierRequest,
	]{
		Service:    service,
		EntityName: "article_group",
		MapCreateDTO: func(req dto.CreateClassifierRequest) *article.Group {
			return req.ToGroup()
		},
		MapUpdateDTO: func(req dto.UpdateClassifierRequest, existing *article.Group) *article.Group {
			req.ApplyToGroup(existing)
			return existing
		},
		MapToDTO: func(entity *article.Group) any {
			return dto.FromGroup(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

// LineHTTPHandler is the concrete catalog handler for article lines.
type LineHTTPHandler = CatalogHandler[
	*article.Line,
	dto.CreateClassifierRequest,
	dto.UpdateClassifierRequest,
]

// NewLineHandler wires the generic catalog handler for article lines.
func NewLineHandler(base *BaseHandler, service *domain.CatalogService[*article.Line]) *LineHTTPHandler {
	config := CatalogHandlerConfig[
		*article.Line,
		dto.CreateClassifierRequest,
		dto.UpdateClassifierRequest,
	]{
		Service:    service,
		EntityName: "article_line",
		MapCreateDTO: func(req dto.CreateClassifierRequest) *article.Line {
			return req.ToLine()
		},
		MapUpdateDTO: func(req dto.UpdateClassifierRequest, existing *article.Line) *article.Line {
			req.ApplyToLine(existing)
			return existing
		},
		MapToDTO: func(entity *article.Line) any {
			return dto.FromLine(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
