package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tarifario/internal/core/apperror"
	"tarifario/internal/domain/catalogs/article"
	"tarifario/internal/infrastructure/storage/postgres"
)

const (
	articleTable      = "cat_articles"
	articleGroupTable = "cat_article_groups"
	articleLineTable  = "cat_article_lines"
)

// ArticleRepo implements article.Repository.
type ArticleRepo struct {
	*BaseCatalogRepo[*article.Article]
}

// NewArticleRepo creates a new article repository.
func NewArticleRepo(txm *postgres.TxManager) *ArticleRepo {
	return &ArticleRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*article.Article](
			txm,
			articleTable,
			postgres.ExtractDBColumns[article.Article](),
			func() *article.Article { return &article.Article{} },
		),
	}
}

// FindByBarcode retrieves an article by barcode.
func (r *ArticleRepo) FindByBarcode(ctx context.Context, barcode string) (*article.Article, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("article", barcode)
		}
		return nil, err
	}
	return item, nil
}

// ArticleGroupRepo implements article.GroupRepository.
type ArticleGroupRepo struct {
	*BaseCatalogRepo[*article.Group]
}

// NewArticleGroupRepo creates a new article group repository.
func NewArticleGroupRepo(txm *postgres.TxManager) *ArticleGroupRepo {
	return &ArticleGroupRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*article.Group](
			txm,
			articleGroupTable,
			postgres.ExtractDBColumns[article.Group](),
			func() *article.Group { return &article.Group{} },
		),
	}
}

// ArticleLineRepo implements article.LineRepository.
type ArticleLineRepo struct {
	*BaseCatalogRepo[*article.Line]
}

// NewArticleLineRepo creates a new article line repository.
func NewArticleLineRepo(txm *postgres.TxManager) *ArticleLineRepo {
	return &ArticleLineRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*article.Line](
			txm,
			articleLineTable,
			postgres.ExtractDBColumns[article.Line](),
			func() *article.Line { return &article.Line{} },
		),
	}
}
