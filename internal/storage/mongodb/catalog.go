package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

type categoryDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	ImageURL    string    `bson:"imageUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
}

func (r *categoryRepository) categories() *mongo.Collection {
	return r.storage.collection(categoriesCollection)
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	if _, err := r.categories().InsertOne(ctx, categoryDocument(*c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*model.Category, error) {
	var doc categoryDocument
	if err := r.categories().FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	c := model.Category(doc)
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	cursor, err := r.categories().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]model.Category, 0, len(docs))
	for _, doc := range docs {
		result = append(result, model.Category(doc))
	}
	return result, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.categories().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

type productOption struct {
	Unit         string `bson:"unit"`
	UnitSize     string `bson:"unitSize,omitempty"`
	Quantity     int    `bson:"quantity"`
	MRP          string `bson:"mrp"`
	SellingPrice string `bson:"sellingPrice"`
	SpecialPrice string `bson:"specialPrice"`
}

type productLocation struct {
	Code  string `bson:"code"`
	Rack  int    `bson:"rack"`
	Shelf int    `bson:"shelf"`
	Bin   int    `bson:"bin"`
}

type productDocument struct {
	Key           string           `bson:"_id"`
	ID            string           `bson:"id"`
	Category      string           `bson:"category"`
	ProductNumber int              `bson:"productNumber"`
	Name          string           `bson:"name"`
	NameTamil     string           `bson:"nameTamil,omitempty"`
	Description   string           `bson:"description,omitempty"`
	Keywords      []string         `bson:"keywords,omitempty"`
	Options       []productOption  `bson:"options,omitempty"`
	ImageURLs     []string         `bson:"imageUrls,omitempty"`
	Location      *productLocation `bson:"location,omitempty"`
	ShowOfferBand bool             `bson:"showOfferBand"`
	CreatedAt     time.Time        `bson:"createdAt"`
	UpdatedAt     time.Time        `bson:"updatedAt"`
}

func productKey(category, id string) string {
	return category + "/" + id
}

func toProductDocument(p *model.Product) productDocument {
	doc := productDocument{
		Key:           productKey(p.Category, p.ID),
		ID:            p.ID,
		Category:      p.Category,
		ProductNumber: p.ProductNumber,
		Name:          p.Name,
		NameTamil:     p.NameTamil,
		Description:   p.Description,
		Keywords:      p.Keywords,
		ImageURLs:     p.ImageURLs,
		ShowOfferBand: p.ShowOfferBand,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, o := range p.Options {
		doc.Options = append(doc.Options, productOption{
			Unit:         o.Unit,
			UnitSize:     o.UnitSize,
			Quantity:     o.Quantity,
			MRP:          o.MRP.String(),
			SellingPrice: o.SellingPrice.String(),
			SpecialPrice: o.SpecialPrice.String(),
		})
	}
	if p.Location != nil {
		loc := productLocation(*p.Location)
		doc.Location = &loc
	}
	return doc
}

func (d productDocument) toModel() model.Product {
	p := model.Product{
		ID:            d.ID,
		Category:      d.Category,
		ProductNumber: d.ProductNumber,
		Name:          d.Name,
		NameTamil:     d.NameTamil,
		Description:   d.Description,
		Keywords:      d.Keywords,
		ImageURLs:     d.ImageURLs,
		ShowOfferBand: d.ShowOfferBand,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, o := range d.Options {
		p.Options = append(p.Options, model.ProductOption{
			Unit:         o.Unit,
			UnitSize:     o.UnitSize,
			Quantity:     o.Quantity,
			MRP:          parseDecimal(o.MRP),
			SellingPrice: parseDecimal(o.SellingPrice),
			SpecialPrice: parseDecimal(o.SpecialPrice),
		})
	}
	if d.Location != nil {
		loc := model.ProductLocation(*d.Location)
		p.Location = &loc
	}
	return p
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r *productRepository) products() *mongo.Collection {
	return r.storage.collection(productsCollection)
}

// Create takes the next number from a per-category counter document.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	var counter struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.storage.collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": "products/" + p.Category}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&counter)
	if err != nil {
		return err
	}

	doc := toProductDocument(p)
	doc.ProductNumber = counter.Seq
	if _, err := r.products().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	p.ProductNumber = counter.Seq
	return nil
}

func (r *productRepository) Get(ctx context.Context, category, id string) (*model.Product, error) {
	var doc productDocument
	if err := r.products().FindOne(ctx, bson.M{"_id": productKey(category, id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	p := doc.toModel()
	return &p, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "productNumber", Value: 1}})
	cursor, err := r.products().Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toModel())
	}
	return result, nil
}

func (r *productRepository) UpdateLocation(ctx context.Context, category, id string, location *model.ProductLocation) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	update := bson.M{"$set": set}
	if location != nil {
		set["location"] = productLocation(*location)
	} else {
		update["$unset"] = bson.M{"location": ""}
	}
	res, err := r.products().UpdateOne(ctx, bson.M{"_id": productKey(category, id)}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) SetOfferBand(ctx context.Context, category, id string, show bool) error {
	update := bson.M{"$set": bson.M{"showOfferBand": show, "updatedAt": time.Now().UTC()}}
	res, err := r.products().UpdateOne(ctx, bson.M{"_id": productKey(category, id)}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, category, id string) error {
	res, err := r.products().DeleteOne(ctx, bson.M{"_id": productKey(category, id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

type offerMessageDocument struct {
	ID        string    `bson:"_id"`
	Text      string    `bson:"text"`
	Position  int       `bson:"order"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (r *offerMessageRepository) messages() *mongo.Collection {
	return r.storage.collection(offerMessagesCollection)
}

func (r *offerMessageRepository) Create(ctx context.Context, m *model.OfferMessage) error {
	if _, err := r.messages().InsertOne(ctx, offerMessageDocument(*m)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *offerMessageRepository) List(ctx context.Context) ([]model.OfferMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.messages().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []offerMessageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]model.OfferMessage, 0, len(docs))
	for _, doc := range docs {
		result = append(result, model.OfferMessage(doc))
	}
	return result, nil
}

func (r *offerMessageRepository) Update(ctx context.Context, m *model.OfferMessage) error {
	update := bson.M{"$set": bson.M{"text": m.Text, "order": m.Position}}
	res, err := r.messages().UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *offerMessageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.messages().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
