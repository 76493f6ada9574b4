package reservations

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"riviera/db"
	"riviera/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

var passSecret = []byte(globals.EnvOr("PASS_SECRET", "reception-pass-secret"))

// signPass returns the signed QR payload the reception scanner validates:
// reservationID|passCode|timestamp|signature.
func signPass(reservationID, passCode string) string {
	data := fmt.Sprintf("%s|%s|%d", reservationID, passCode, time.Now().Unix())
	h := hmac.New(sha256.New, passSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintPass renders a confirmed reservation as a PDF pass with a signed QR
// code for the reception desk.
func PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var res Reservation
	err := db.ReservationsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&res)
	if err != nil {
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}
	if res.Status != StatusConfirmed {
		http.Error(w, "Reservation is not confirmed", http.StatusConflict)
		return
	}

	qrPNG, err := qrcode.Encode(signPass(res.ID, res.PassCode), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Beach Club Reservation Pass", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, fmt.Sprintf(
		"Name: %s\nDate: %s\nSlot: %s\nGuests: %d\nReservation: %s\nIssued: %s",
		res.Name, res.Date, res.Slot, res.Guests, res.ID,
		time.Now().Format("02 Jan 2006 15:04"),
	), "", "L", false)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 60, 40, 40, false, imgOpts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Show this pass at reception. The QR code is validated on arrival.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+res.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
