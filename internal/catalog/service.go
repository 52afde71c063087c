package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/jewelcatalog/internal/categories"
	"github.com/angelmondragon/jewelcatalog/internal/jewellery"
	"github.com/angelmondragon/jewelcatalog/internal/wishlist"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	JewelleryRepo *jewellery.Repository
	CategoryRepo  *categories.Repository
	WishlistRepo  *wishlist.Repository
	Logger        *logger.Logger
}

// CategoryCount pairs a category with the number of items filed under it.
type CategoryCount struct {
	categories.Category
	ItemCount int `json:"itemCount"`
}

// Service is the flat operation surface used by the app screens and the backup job.
type Service interface {
	SaveJewelleryItem(ctx context.Context, draft jewellery.Draft) (jewellery.Item, error)
	GetJewelleryItems(ctx context.Context) ([]jewellery.Item, error)
	GetJewelleryByCategory(ctx context.Context, name string) ([]jewellery.Item, error)
	FindJewelleryByImageID(ctx context.Context, imgID string) (jewellery.Item, error)
	UpdateJewelleryItem(ctx context.Context, id string, patch jewellery.Patch) error
	DeleteJewelleryItem(ctx context.Context, id string) error

	SaveCategory(ctx context.Context, draft categories.Draft) (categories.Category, error)
	GetCustomCategories(ctx context.Context) ([]categories.Category, error)
	GetAllCategories(ctx context.Context) ([]categories.Category, error)
	GetCategoriesWithCounts(ctx context.Context) ([]CategoryCount, error)
	UpdateCategory(ctx context.Context, id string, patch categories.Patch) error
	DeleteCategory(ctx context.Context, id string) error

	SaveWishlist(ctx context.Context, draft wishlist.Draft) (wishlist.Wishlist, error)
	BuildWishlist(ctx context.Context, customerName string, itemIDs []string) (wishlist.Wishlist, error)
	GetWishlists(ctx context.Context) ([]wishlist.Wishlist, error)
	DeleteWishlist(ctx context.Context, id string) error
}

type service struct {
	jewelleryRepo *jewellery.Repository
	categoryRepo  *categories.Repository
	wishlistRepo  *wishlist.Repository
	logg          *logger.Logger
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.JewelleryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jewellery repo is required")
	}
	if params.CategoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category repo is required")
	}
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		jewelleryRepo: params.JewelleryRepo,
		categoryRepo:  params.CategoryRepo,
		wishlistRepo:  params.WishlistRepo,
		logg:          logg,
	}, nil
}

func (s *service) SaveJewelleryItem(ctx context.Context, draft jewellery.Draft) (jewellery.Item, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Image = strings.TrimSpace(draft.Image)
	if err := requireFields(map[string]string{"image": draft.Image, "name": draft.Name}); err != nil {
		return jewellery.Item{}, err
	}
	draft.Categories = cleanNames(draft.Categories)
	draft.Metal = optional(draft.Metal)
	draft.Weight = optional(draft.Weight)
	draft.Carat = optional(draft.Carat)

	item, err := s.jewelleryRepo.Save(ctx, draft)
	if err != nil {
		return jewellery.Item{}, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"record_id": item.ID, "img_id": item.ImgID}), "jewellery item saved")
	return item, nil
}

func (s *service) GetJewelleryItems(ctx context.Context) ([]jewellery.Item, error) {
	return s.jewelleryRepo.List(ctx)
}

func (s *service) GetJewelleryByCategory(ctx context.Context, name string) ([]jewellery.Item, error) {
	return s.jewelleryRepo.ListByCategory(ctx, strings.TrimSpace(name))
}

func (s *service) FindJewelleryByImageID(ctx context.Context, imgID string) (jewellery.Item, error) {
	return s.jewelleryRepo.FindByImageID(ctx, imgID)
}

func (s *service) UpdateJewelleryItem(ctx context.Context, id string, patch jewellery.Patch) error {
	if patch.Name.Set {
		patch.Name.Value = strings.TrimSpace(patch.Name.Value)
		if patch.Name.Value == "" {
			return validationError("name", "must not be blank")
		}
	}
	if patch.Image.Set {
		patch.Image.Value = strings.TrimSpace(patch.Image.Value)
		if patch.Image.Value == "" {
			return validationError("image", "must not be blank")
		}
	}
	if patch.Categories.Set {
		patch.Categories.Value = cleanNames(patch.Categories.Value)
	}
	patch.Metal.Value = optional(patch.Metal.Value)
	patch.Weight.Value = optional(patch.Weight.Value)
	patch.Carat.Value = optional(patch.Carat.Value)

	if err := s.jewelleryRepo.Update(ctx, id, patch); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, id), "jewellery item updated")
	return nil
}

func (s *service) DeleteJewelleryItem(ctx context.Context, id string) error {
	if err := s.jewelleryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, id), "jewellery item deleted")
	return nil
}

// SaveCategory creates a custom category whose name does not collide with an
// existing one, the default category included.
func (s *service) SaveCategory(ctx context.Context, draft categories.Draft) (categories.Category, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Icon = strings.TrimSpace(draft.Icon)
	if err := requireFields(map[string]string{"name": draft.Name, "icon": draft.Icon}); err != nil {
		return categories.Category{}, err
	}
	if err := s.ensureUniqueName(ctx, draft.Name, ""); err != nil {
		return categories.Category{}, err
	}

	created, err := s.categoryRepo.Save(ctx, draft)
	if err != nil {
		return categories.Category{}, err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "category saved")
	return created, nil
}

func (s *service) GetCustomCategories(ctx context.Context) ([]categories.Category, error) {
	return s.categoryRepo.ListCustom(ctx)
}

func (s *service) GetAllCategories(ctx context.Context) ([]categories.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

func (s *service) GetCategoriesWithCounts(ctx context.Context) ([]CategoryCount, error) {
	cats, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.jewelleryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		count := 0
		for _, item := range items {
			if item.InCategory(c.Name) {
				count++
			}
		}
		out = append(out, CategoryCount{Category: c, ItemCount: count})
	}
	return out, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, patch categories.Patch) error {
	if id == categories.DefaultID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "the default category cannot be edited")
	}
	if patch.Name.Set {
		patch.Name.Value = strings.TrimSpace(patch.Name.Value)
		if patch.Name.Value == "" {
			return validationError("name", "must not be blank")
		}
		if err := s.ensureUniqueName(ctx, patch.Name.Value, id); err != nil {
			return err
		}
	}
	if patch.Icon.Set {
		patch.Icon.Value = strings.TrimSpace(patch.Icon.Value)
		if patch.Icon.Value == "" {
			return validationError("icon", "must not be blank")
		}
	}

	if err := s.categoryRepo.Update(ctx, id, patch); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, id), "category updated")
	return nil
}

// DeleteCategory removes a custom category. Items keep the name in their
// categories and stay reachable through the default category.
func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if id == categories.DefaultID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "the default category cannot be deleted")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, id), "category deleted")
	return nil
}

func (s *service) SaveWishlist(ctx context.Context, draft wishlist.Draft) (wishlist.Wishlist, error) {
	draft.CustomerName = strings.TrimSpace(draft.CustomerName)
	if draft.CustomerName == "" {
		return wishlist.Wishlist{}, validationError("customerName", "is required")
	}
	draft.Categories = cleanNames(draft.Categories)

	created, err := s.wishlistRepo.Save(ctx, draft)
	if err != nil {
		return wishlist.Wishlist{}, err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "wishlist saved")
	return created, nil
}

// BuildWishlist snapshots the selected items and derives the wishlist's
// categories and id summary from them.
func (s *service) BuildWishlist(ctx context.Context, customerName string, itemIDs []string) (wishlist.Wishlist, error) {
	if len(itemIDs) == 0 {
		return wishlist.Wishlist{}, validationError("jewelleryIds", "select at least one item")
	}

	defaultName := s.categoryRepo.Default().Name
	draft := wishlist.Draft{CustomerName: customerName}
	imgIDs := make([]string, 0, len(itemIDs))
	seen := map[string]bool{}
	for _, id := range itemIDs {
		item, err := s.jewelleryRepo.Get(ctx, id)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return wishlist.Wishlist{}, typed.WithDetails(map[string]any{"id": id})
			}
			return wishlist.Wishlist{}, err
		}
		draft.Images = append(draft.Images, wishlist.SnapshotOf(item))
		imgIDs = append(imgIDs, displayID(item))

		category := item.PrimaryCategory(defaultName)
		if category != "" && !seen[strings.ToLower(category)] {
			seen[strings.ToLower(category)] = true
			draft.Categories = append(draft.Categories, category)
		}
	}
	draft.JewelleryIDs = strings.Join(imgIDs, ", ")
	return s.SaveWishlist(ctx, draft)
}

func (s *service) GetWishlists(ctx context.Context) ([]wishlist.Wishlist, error) {
	return s.wishlistRepo.List(ctx)
}

func (s *service) DeleteWishlist(ctx context.Context, id string) error {
	if err := s.wishlistRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithRecordID(ctx, id), "wishlist deleted")
	return nil
}

func (s *service) ensureUniqueName(ctx context.Context, name, selfID string) error {
	all, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range all {
		if c.ID != selfID && strings.EqualFold(c.Name, name) {
			return pkgerrors.New(pkgerrors.CodeConflict, "category already exists").
				WithDetails(map[string]any{"name": c.Name})
		}
	}
	return nil
}

func displayID(item jewellery.Item) string {
	if item.ImgID != "" {
		return item.ImgID
	}
	return item.ID
}
