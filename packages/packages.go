package packages

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"riviera/db"
	"riviera/rdx"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheKey = "public:packages"

// Package is a bookable day formula shown on the public site.
type Package struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Price       string   `json:"price" bson:"price"` // display string, e.g. "from 45€"
	BasePrice   float64  `json:"basePrice" bson:"basePrice"`
	Features    []string `json:"features,omitempty" bson:"features,omitempty"`
	MinGuests   int      `json:"minGuests" bson:"minGuests"`
	MaxGuests   int      `json:"maxGuests" bson:"maxGuests"`
	Popular     bool     `json:"popular" bson:"popular"`
	Order       int      `json:"order" bson:"order"`
	Active      bool     `json:"active" bson:"active"`
	CreatedAt   int64    `json:"createdAt" bson:"createdAt"`
}

// ListPackages serves the public packages section, cached in redis until the
// next mutation.
func ListPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.PackagesCollection.Find(ctx, bson.M{"active": true},
		options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var pkgs []Package
	if err := cur.All(ctx, &pkgs); err != nil {
		http.Error(w, "failed to decode packages", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(utils.M{"packages": pkgs})
	_ = rdx.SetWithExpiry(cacheKey, string(payload), 10*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// ListAllPackages serves the admin screen, inactive records included.
func ListAllPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.PackagesCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var pkgs []Package
	if err := cur.All(ctx, &pkgs); err != nil {
		http.Error(w, "failed to decode packages", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"packages": pkgs})
}

func CreatePackage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p Package
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if p.Name == "" || p.Price == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}
	if p.MinGuests < 0 || (p.MaxGuests > 0 && p.MaxGuests < p.MinGuests) {
		http.Error(w, "invalid capacity range", http.StatusBadRequest)
		return
	}

	p.ID = utils.GenerateRandomDigitString(12)
	p.Active = true
	p.CreatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.PackagesCollection.InsertOne(ctx, p); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	invalidateCache()
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"package": p})
}

func UpdatePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var p Package
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	set := bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"basePrice":   p.BasePrice,
		"features":    p.Features,
		"minGuests":   p.MinGuests,
		"maxGuests":   p.MaxGuests,
		"popular":     p.Popular,
		"order":       p.Order,
		"active":      p.Active,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.PackagesCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Package
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidateCache()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"package": updated})
}

func DeletePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.PackagesCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")}); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	invalidateCache()
	w.WriteHeader(http.StatusNoContent)
}

func invalidateCache() {
	_, _ = rdx.RdxDel(cacheKey)
}
