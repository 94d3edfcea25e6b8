package service

import (
	"Sabzee/internal/model"
	"Sabzee/internal/repository"
	"context"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeForumRepo struct {
	post       *model.ForumPost
	incCalls   int
	getCalls   int
	updatedSet bson.M
	deleted    bool

	listQuery *repository.ForumListQuery
	listPosts []*model.ForumPostView
	listTotal int64
}

func (s *fakeForumRepo) Create(_ context.Context, post *model.ForumPost) error {
	post.ID = primitive.NewObjectID()
	s.post = post
	return nil
}

func (s *fakeForumRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.ForumPost, error) {
	s.getCalls++
	if s.post == nil || s.post.ID != id {
		return nil, nil
	}
	return s.post, nil
}

func (s *fakeForumRepo) List(_ context.Context, q *repository.ForumListQuery) ([]*model.ForumPostView, int64, error) {
	s.listQuery = q
	return s.listPosts, s.listTotal, nil
}

func (s *fakeForumRepo) IncrementViews(_ context.Context, id primitive.ObjectID) (*model.ForumPost, error) {
	if s.post == nil || s.post.ID != id {
		return nil, nil
	}
	s.incCalls++
	s.post.Views++
	return s.post, nil
}

func (s *fakeForumRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (*model.ForumPost, error) {
	if s.post == nil || s.post.ID != id {
		return nil, nil
	}
	s.updatedSet = set
	if title, ok := set["title"].(string); ok {
		s.post.Title = title
	}
	if isQuestion, ok := set["isQuestion"].(bool); ok {
		s.post.IsQuestion = isQuestion
	}
	if content, ok := set["content"].(string); ok {
		s.post.Content = content
	}
	return s.post, nil
}

func (s *fakeForumRepo) SaveComments(_ context.Context, id primitive.ObjectID, comments []model.Comment) error {
	s.post.Comments = comments
	s.post.CommentCount = len(comments)
	return nil
}

func (s *fakeForumRepo) SaveLikes(_ context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	s.post.Likes = likes
	return nil
}

func (s *fakeForumRepo) SaveImages(_ context.Context, id primitive.ObjectID, images []model.PostImage) (*model.ForumPost, error) {
	if s.post == nil || s.post.ID != id {
		return nil, nil
	}
	s.post.Images = images
	return s.post, nil
}

func (s *fakeForumRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	s.deleted = true
	return nil
}

func (s *fakeForumRepo) AllImageStorageIDs(_ context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	if s.post != nil {
		for _, img := range s.post.Images {
			ids[img.StorageID] = struct{}{}
		}
	}
	return ids, nil
}

type fakeUserRepo struct {
	users      map[primitive.ObjectID]*model.User
	created    *model.User
	updatedSet bson.M
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	s := &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = user
	s.created = user
	return nil
}

func (s *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.users[id], nil
}

func (s *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	s.updatedSet = set
	return u, nil
}

func (s *fakeUserRepo) ListFarmers(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0)
	for _, u := range s.users {
		if u.Role == model.RoleFarmer {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeImageStore struct {
	mu         sync.Mutex
	uploaded   []string
	deleted    []string
	failUpload bool
}

func (s *fakeImageStore) Upload(_ context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.failUpload {
		return "", io.ErrUnexpectedEOF
	}
	s.mu.Lock()
	s.uploaded = append(s.uploaded, objectName)
	s.mu.Unlock()
	return objectName, nil
}

func (s *fakeImageStore) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	s.deleted = append(s.deleted, objectName)
	s.mu.Unlock()
	return nil
}

func (s *fakeImageStore) PublicURL(objectName string) string {
	return "http://store.local/" + objectName
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]*model.Product
	restored map[primitive.ObjectID]int64
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	s := &fakeProductRepo{
		products: make(map[primitive.ObjectID]*model.Product),
		restored: make(map[primitive.ObjectID]int64),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	product.ID = primitive.NewObjectID()
	s.products[product.ID] = product
	return nil
}

func (s *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	return s.products[id], nil
}

func (s *fakeProductRepo) List(_ context.Context, q *repository.ProductListQuery) ([]*model.Product, int64, error) {
	out := make([]*model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	if images, ok := set["images"].([]model.PostImage); ok {
		p.Images = images
	}
	return p, nil
}

func (s *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.products, id)
	return nil
}

func (s *fakeProductRepo) DecrementStock(_ context.Context, id primitive.ObjectID, qty int64) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok || p.Quantity < qty {
		return nil, nil
	}
	p.Quantity -= qty
	if p.Quantity == 0 {
		p.Status = model.ProductStatusSoldOut
	}
	return p, nil
}

func (s *fakeProductRepo) IncrementStock(_ context.Context, id primitive.ObjectID, qty int64) error {
	if p, ok := s.products[id]; ok {
		p.Quantity += qty
		p.Status = model.ProductStatusAvailable
	}
	s.restored[id] += qty
	return nil
}

func (s *fakeProductRepo) AllImageStorageIDs(_ context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*model.Order
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	s := &fakeOrderRepo{orders: make(map[primitive.ObjectID]*model.Order)}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *fakeOrderRepo) Create(_ context.Context, order *model.Order) error {
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order
	return nil
}

func (s *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	return s.orders[id], nil
}

func (s *fakeOrderRepo) ListByConsumer(_ context.Context, consumer primitive.ObjectID) ([]*model.Order, error) {
	out := make([]*model.Order, 0)
	for _, o := range s.orders {
		if o.Consumer == consumer {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderRepo) ListByFarmer(_ context.Context, farmer primitive.ObjectID) ([]*model.Order, error) {
	out := make([]*model.Order, 0)
	for _, o := range s.orders {
		for _, item := range o.Items {
			if item.Farmer == farmer {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	return o, nil
}

func (s *fakeOrderRepo) Analytics(_ context.Context, farmer primitive.ObjectID) (*repository.FarmerAnalytics, error) {
	return &repository.FarmerAnalytics{}, nil
}
