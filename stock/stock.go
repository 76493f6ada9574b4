package stock

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"riviera/db"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StockItem tracks a supply line. Low is derived from quantity vs threshold.
type StockItem struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Category  string `json:"category,omitempty" bson:"category,omitempty"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	Unit      string `json:"unit" bson:"unit"` // bottles, kg, pieces...
	Threshold int    `json:"threshold" bson:"threshold"`
	Low       bool   `json:"low" bson:"-"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}

func ListStock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.StockCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var items []StockItem
	if err := cur.All(ctx, &items); err != nil {
		http.Error(w, "failed to decode stock", http.StatusInternalServerError)
		return
	}
	for i := range items {
		items[i].Low = items[i].Quantity <= items[i].Threshold
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"stock": items})
}

func CreateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item StockItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if item.Name == "" || item.Unit == "" || item.Quantity < 0 {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	item.ID = utils.GenerateRandomDigitString(12)
	item.UpdatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.StockCollection.InsertOne(ctx, item); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"item": item})
}

func UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var item StockItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.StockCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"name":      item.Name,
			"category":  item.Category,
			"quantity":  item.Quantity,
			"unit":      item.Unit,
			"threshold": item.Threshold,
			"updatedAt": time.Now().Unix(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated StockItem
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	updated.Low = updated.Quantity <= updated.Threshold
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"item": updated})
}

// AdjustQuantity applies a delta, clamped at zero, for quick +/- buttons.
func AdjustQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Delta == 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var item StockItem
	if err := db.StockCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&item); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	qty := item.Quantity + body.Delta
	if qty < 0 {
		qty = 0
	}
	_, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"id": item.ID},
		bson.M{"$set": bson.M{"quantity": qty, "updatedAt": time.Now().Unix()}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": item.ID, "quantity": qty, "low": qty <= item.Threshold})
}

func DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.StockCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
