package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
)

// MongoOptions locates the purchase order collection.
type MongoOptions struct {
	URI        string
	Database   string // default "procurement"
	Collection string // default "purchase_orders"
	Timeout    time.Duration
}

// MongoStore reads purchase orders from MongoDB. Each record holds the
// order fields, the supplier fields and a snapshot of the issuing company
// under "subsidiary".
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// ConnectMongo connects and pings the server. Connection failures carry
// errors.ErrCodeStorageUnavailable.
func ConnectMongo(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = "procurement"
	}
	if opts.Collection == "" {
		opts.Collection = "purchase_orders"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetConnectTimeout(opts.Timeout))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeStorageUnavailable, err, "connect mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, perrors.Wrap(perrors.ErrCodeStorageUnavailable, err, "ping mongo")
	}

	return &MongoStore{
		client:  client,
		coll:    client.Database(opts.Database).Collection(opts.Collection),
		timeout: opts.Timeout,
	}, nil
}

// FindDocument implements [OrderStore].
func (s *MongoStore) FindDocument(ctx context.Context, number string) (document.Document, error) {
	if err := perrors.ValidateOrderNumber(number); err != nil {
		return document.Document{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rec orderRecord
	err := s.coll.FindOne(ctx, bson.M{"po_number": number}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return document.Document{}, notFound(number)
	}
	if err != nil {
		return document.Document{}, perrors.Wrap(perrors.ErrCodeStorageUnavailable, err, "find order %s", number)
	}
	return rec.document(), nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// orderRecord is the stored shape of a purchase order.
type orderRecord struct {
	document.Order `bson:",inline"`

	SupplierName    string    `bson:"supplier_name"`
	SupplierAddress string    `bson:"supplier_address"`
	SupplierContact string    `bson:"supplier_contact"`
	DeliveryDate    time.Time `bson:"delivery_date"`

	Subsidiary subsidiaryRecord `bson:"subsidiary"`
}

type subsidiaryRecord struct {
	document.Issuer `bson:",inline"`

	Board []boardMember `bson:"board_of_directors"`
}

type boardMember struct {
	Name     string `bson:"name"`
	Position string `bson:"position"`
}

func (r orderRecord) document() document.Document {
	issuer := r.Subsidiary.Issuer
	if issuer.Signer == nil {
		issuer.Signer = r.Subsidiary.director()
	}
	return document.Document{
		Order:  r.Order,
		Issuer: issuer,
		Counterparty: document.Counterparty{
			Name:         r.SupplierName,
			Address:      r.SupplierAddress,
			Contact:      r.SupplierContact,
			DeliveryDate: r.DeliveryDate,
		},
	}
}

// director picks the signer from the board: the president director, else a
// plain director, else the first member listed.
func (s subsidiaryRecord) director() *document.Signer {
	if len(s.Board) == 0 {
		return nil
	}
	var plain *boardMember
	for i := range s.Board {
		m := &s.Board[i]
		p := strings.ToLower(strings.TrimSpace(m.Position))
		if strings.Contains(p, "direktur utama") || strings.Contains(p, "president director") {
			return &document.Signer{Name: m.Name, Title: m.Position}
		}
		if plain == nil && (p == "direktur" || p == "director") {
			plain = m
		}
	}
	if plain == nil {
		plain = &s.Board[0]
	}
	return &document.Signer{Name: plain.Name, Title: plain.Position}
}

var _ OrderStore = (*MongoStore)(nil)
