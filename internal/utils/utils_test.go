package utils

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCalculateDistance(t *testing.T) {
	if d := CalculateDistance(24.7136, 46.6753, 24.7136, 46.6753); d != 0 {
		t.Fatalf("identical points = %v", d)
	}

	// One degree of latitude on a 6371 km sphere.
	want := EarthRadiusKM * math.Pi / 180
	if d := CalculateDistance(0, 0, 1, 0); math.Abs(d-want) > 1e-9 {
		t.Fatalf("one degree = %v, want %v", d, want)
	}
}

func inBox(b Bounds, p Point) bool {
	return p.Lat >= b.Southwest.Lat && p.Lat <= b.Northeast.Lat &&
		p.Lng >= b.Southwest.Lng && p.Lng <= b.Northeast.Lng
}

func TestBoundingBoxContainsCircle(t *testing.T) {
	center := Point{Lat: 24.7136, Lng: 46.6753}
	box := BoundingBox(center, 10)

	for _, bearing := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		p := destination(center, 9.99, bearing)
		if !inBox(box, p) {
			t.Fatalf("bearing %v: %v outside %+v", bearing, p, box)
		}
	}

	if inBox(box, Point{Lat: 21.4858, Lng: 39.1925}) {
		t.Fatal("Jeddah should be outside a 10 km box around Riyadh")
	}
}

func TestBoundingBoxWidensNearAntimeridian(t *testing.T) {
	box := BoundingBox(Point{Lat: 0, Lng: 179.99}, 50)
	if box.Southwest.Lng != -180 || box.Northeast.Lng != 180 {
		t.Fatalf("box = %+v", box)
	}
}

func TestRoundDistance(t *testing.T) {
	if got := RoundDistance(1.26, 1); got != 1.3 {
		t.Fatalf("RoundDistance = %v", got)
	}
	if got := RoundDistance(0.04, 1); got != 0 {
		t.Fatalf("RoundDistance = %v", got)
	}
}

func TestEstimateDeliveryMinutes(t *testing.T) {
	if got := EstimateDeliveryMinutes(15, 0); got != 30 {
		t.Fatalf("default speed = %d", got)
	}
	if got := EstimateDeliveryMinutes(30, 60); got != 30 {
		t.Fatalf("60 km/h = %d", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{12, "SAR", "12.00 SAR"},
		{2.005, "usd", "$2.01"},
		{7.5, "XYZ", "7.50"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("admin-1", UserTypeAdmin, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "admin-1" || claims.UserType != UserTypeAdmin {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := ValidateToken(token, "other"); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestGetPaginationParamsClamps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=0&page_size=500&order=sideways", nil)

	params := GetPaginationParams(c)
	if params.Page != 1 || params.PageSize != MaxPageSize || params.Order != "desc" {
		t.Fatalf("params = %+v", params)
	}
	if params.GetSkip() != 0 {
		t.Fatalf("skip = %d", params.GetSkip())
	}

	meta := CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 10}, 25)
	if meta.TotalPages != 3 || !meta.HasNext || !meta.HasPrevious {
		t.Fatalf("meta = %+v", meta)
	}
}

// destination walks distanceKM from p along bearing (degrees).
func destination(p Point, distanceKM, bearing float64) Point {
	rad := math.Pi / 180
	delta := distanceKM / EarthRadiusKM
	theta := bearing * rad
	lat1, lng1 := p.Lat*rad, p.Lng*rad

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lng2 := lng1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1), math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))
	return Point{Lat: lat2 / rad, Lng: lng2 / rad}
}

func TestValidationErrorResponseCarriesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationErrorResponse(c, map[string]string{"code": "Field is required"})

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != StatusError || body.Error == nil || body.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("body = %+v", body)
	}
	if body.Error.Details["code"] != "Field is required" {
		t.Fatalf("details = %v", body.Error.Details)
	}
}
