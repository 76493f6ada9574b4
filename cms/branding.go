package cms

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"riviera/db"
	"riviera/filemgr"
	"riviera/mq"
	"riviera/rdx"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Branding holds the single site-wide identity document.
type Branding struct {
	ClubName     string `json:"clubName" bson:"clubName"`
	Tagline      string `json:"tagline,omitempty" bson:"tagline,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	CoverURL     string `json:"coverUrl,omitempty" bson:"coverUrl,omitempty"`
	PrimaryColor string `json:"primaryColor,omitempty" bson:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty" bson:"accentColor,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	Address      string `json:"address,omitempty" bson:"address,omitempty"`
	UpdatedAt    int64  `json:"updatedAt" bson:"updatedAt"`
}

// brandingKey pins the singleton document.
const brandingKey = "site"

const brandingCacheKey = "public:branding"

func GetBranding(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(brandingCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var b Branding
	if err := db.BrandingCollection.FindOne(ctx, bson.M{"_key": brandingKey}).Decode(&b); err != nil {
		// nothing saved yet, serve defaults
		b = Branding{ClubName: "Riviera Beach Club"}
	}

	payload, _ := json.Marshal(utils.M{"branding": b})
	_ = rdx.SetWithExpiry(brandingCacheKey, string(payload), 10*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func UpdateBranding(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var b Branding
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if b.ClubName == "" {
		http.Error(w, "clubName required", http.StatusBadRequest)
		return
	}
	b.UpdatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.BrandingCollection.UpdateOne(ctx,
		bson.M{"_key": brandingKey},
		bson.M{"$set": bson.M{
			"clubName":     b.ClubName,
			"tagline":      b.Tagline,
			"primaryColor": b.PrimaryColor,
			"accentColor":  b.AccentColor,
			"contactEmail": b.ContactEmail,
			"contactPhone": b.ContactPhone,
			"address":      b.Address,
			"updatedAt":    b.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	_, _ = rdx.RdxDel(brandingCacheKey)
	mq.Emit(r.Context(), "content-updated", mq.Event{EntityType: "branding"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"branding": b})
}

// UploadBrandingAsset stores the logo or the cover photo. The "kind"
// route param picks which slot gets the url.
func UploadBrandingAsset(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := ps.ByName("kind")
	if kind != "logo" && kind != "cover" {
		http.Error(w, "unknown asset kind", http.StatusBadRequest)
		return
	}

	url, _, err := filemgr.SaveImageForm(r, "image", filemgr.FolderBranding)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	field := "logoUrl"
	if kind == "cover" {
		field = "coverUrl"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.BrandingCollection.UpdateOne(ctx,
		bson.M{"_key": brandingKey},
		bson.M{"$set": bson.M{field: url, "updatedAt": time.Now().Unix()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	_, _ = rdx.RdxDel(brandingCacheKey)
	mq.Emit(r.Context(), "content-updated", mq.Event{EntityType: "branding"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"url": url})
}
