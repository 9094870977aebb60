package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/repository"
)

const (
	seedAuditor         = "Quality Auditor"
	nonCompliantNote    = "Seeded non-compliance sample for QC Tools demo"
	DefaultSeedLocation = "Jaipur"
	DefaultSeedCount    = 8
)

var seedWindowStart = time.Date(2024, time.September, 7, 0, 0, 0, 0, time.UTC)

const seedWindowDays = 38

type seedReading struct {
	location    string
	ph          float64
	tds         float64
	turbidity   float64
	chlorine    float64
	temperature float64
	notes       string
}

var jaipurReadings = []seedReading{
	{"Vidyadhar Nagar, Sector 1", 7.2, 420, 0.8, 0.35, 28, "Regular monitoring - within acceptable limits"},
	{"Vidyadhar Nagar, Sector 5", 7.1, 450, 0.9, 0.32, 27, "Standard quality parameters"},
	{"Jhotwara Industrial Area", 7.8, 680, 1.8, 0.28, 29, "Slightly elevated TDS - monitoring required"},
	{"Jhotwara Residential", 7.5, 620, 1.5, 0.30, 28, "Within acceptable range"},
	{"Malviya Nagar, Block A", 7.0, 380, 0.6, 0.38, 27, "Excellent water quality"},
	{"Malviya Nagar, Block C", 7.1, 395, 0.7, 0.36, 27, "Good quality maintained"},
	{"C-Scheme, Ashok Marg", 6.9, 350, 0.5, 0.40, 26, "Premium quality - well maintained"},
	{"C-Scheme, Tonk Road", 7.0, 365, 0.6, 0.38, 27, "Consistent quality"},
	{"Mansarovar, Sector 7", 7.6, 720, 2.1, 0.25, 29, "Borderline quality - increased monitoring"},
	{"Mansarovar, Sector 3", 7.3, 580, 1.2, 0.33, 28, "Acceptable quality"},
	{"Vaishali Nagar, Block A", 7.2, 410, 0.8, 0.34, 28, "Standard quality parameters"},
	{"Vaishali Nagar, Block D", 7.1, 435, 0.9, 0.32, 27, "Within limits"},
	{"Bani Park, Near Railway Station", 7.9, 750, 2.3, 0.22, 30, "Elevated parameters - review needed"},
	{"Bani Park, Residential", 7.4, 640, 1.6, 0.29, 29, "Acceptable but monitoring"},
	{"Sitapura Industrial Area", 8.2, 920, 3.5, 0.18, 31, "Industrial area - elevated TDS and turbidity, treatment review required"},
	{"Sitapura, Residential Zone", 7.7, 680, 1.9, 0.26, 29, "Moderate quality - regular checks"},
	{"Ajmer Road, Near Durgapura", 7.3, 520, 1.1, 0.31, 28, "Good quality maintained"},
	{"Ajmer Road, Sanganer", 7.6, 710, 2.0, 0.24, 29, "Borderline - increased sampling"},
	{"Raja Park", 7.0, 390, 0.7, 0.37, 27, "Excellent quality"},
	{"Pink City, Hawa Mahal Area", 7.4, 560, 1.3, 0.30, 28, "Tourist area - regular monitoring"},
	{"Ambabari", 7.2, 445, 0.85, 0.34, 28, "Standard quality"},
	{"Shyam Nagar", 7.8, 850, 2.6, 0.20, 30, "Elevated TDS - common in some Jaipur areas, requires monitoring"},
	{"Rajasthan University Area", 7.3, 480, 1.0, 0.33, 28, "Institutional area - acceptable quality"},
	{"Tonk Road, Near Airport", 7.6, 720, 1.9, 0.27, 29, "Borderline quality - regular monitoring"},
	{"Pratap Nagar", 7.1, 410, 0.75, 0.35, 27, "Good quality maintained"},
	{"JLN Marg, Civil Lines", 7.2, 440, 0.85, 0.34, 28, "Government area - regular monitoring"},
	{"Sanganer Industrial Estate", 8.0, 880, 3.0, 0.19, 31, "Industrial zone - elevated parameters"},
	{"Gopalpura Bypass", 7.4, 590, 1.4, 0.31, 29, "Mixed residential-commercial area"},
	{"Sodala", 7.6, 700, 2.0, 0.26, 29, "Borderline quality - monitoring"},
	{"Raja Park Extension", 7.0, 400, 0.7, 0.36, 27, "Residential area - good quality"},
	{"Khatipura", 7.7, 760, 2.2, 0.23, 30, "Mixed area - requires attention"},
	{"Sindhi Camp", 7.5, 650, 1.7, 0.28, 29, "Commercial area - acceptable quality"},
	{"Bapu Nagar", 7.1, 425, 0.8, 0.33, 28, "Residential - standard quality"},
}

// nonCompliantTemplates each break at least one threshold.
var nonCompliantTemplates = [][4]float64{
	{9.2, 650, 0.8, 0.15},
	{6.2, 300, 6.5, 0.3},
	{7.1, 1200, 0.7, 0.4},
	{8.7, 520, 5.8, 1.2},
	{7.0, 700, 2.0, 0.1},
	{6.4, 450, 1.5, 0.18},
	{8.6, 480, 0.5, 0.25},
	{7.3, 800, 5.5, 0.35},
}

// JaipurSamples builds the scored demo dataset spread over the project window.
// Every third sample is verified.
func JaipurSamples() []models.Sample {
	samples := make([]models.Sample, len(jaipurReadings))
	for i, r := range jaipurReadings {
		dayOffset := i * seedWindowDays / len(jaipurReadings)
		ts := seedWindowStart.AddDate(0, 0, dayOffset).Add(time.Duration(8+i%10) * time.Hour)
		temp := r.temperature

		s := models.Sample{
			Location:    r.location,
			Timestamp:   ts,
			PH:          r.ph,
			TDS:         r.tds,
			Turbidity:   r.turbidity,
			Chlorine:    r.chlorine,
			Temperature: &temp,
			Notes:       r.notes,
		}
		if i%3 == 0 {
			by, at := seedAuditor, ts
			s.Verified, s.VerifiedBy, s.VerifiedAt = true, &by, &at
		}
		s.Apply()
		samples[i] = s
	}
	return samples
}

// NonCompliantSamples cycles the templates, one sample an hour back from now.
func NonCompliantSamples(count int, location string, now time.Time) []models.Sample {
	if count <= 0 {
		count = DefaultSeedCount
	}
	if location == "" {
		location = DefaultSeedLocation
	}
	samples := make([]models.Sample, count)
	for i := range samples {
		t := nonCompliantTemplates[i%len(nonCompliantTemplates)]
		s := models.Sample{
			Location:  location,
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			PH:        t[0],
			TDS:       t[1],
			Turbidity: t[2],
			Chlorine:  t[3],
			Notes:     nonCompliantNote,
		}
		s.Apply()
		samples[i] = s
	}
	return samples
}

// RunAllSeeding loads the Jaipur dataset when the samples table is empty.
func RunAllSeeding(ctx context.Context, db *gorm.DB) error {
	log.Println("=== Starting Database Seeding ===")

	samples := repository.NewSampleRepository(db)
	n, err := samples.Count(ctx)
	if err != nil {
		return fmt.Errorf("count samples: %w", err)
	}
	if n > 0 {
		log.Printf("ℹ️  %d samples already present, skipping Jaipur dataset", n)
	} else {
		log.Println("\n[1/2] Seeding Jaipur Samples...")
		if err := insertSamples(ctx, db, JaipurSamples()); err != nil {
			return err
		}
	}

	log.Println("\n[2/2] Refreshing Location Statistics...")
	locations := repository.NewLocationRepository(db)
	if err := locations.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh locations: %w", err)
	}
	if err := placeSeedLocations(ctx, locations); err != nil {
		return err
	}

	log.Println("\n=== Database Seeding Complete ===")
	return nil
}

// seedAreas are approximate coordinates of the seeded neighbourhoods, matched
// by location-name prefix.
var seedAreas = []struct {
	prefix   string
	lat, lng float64
}{
	{"Vidyadhar Nagar", 26.9560, 75.7820},
	{"Jhotwara", 26.9550, 75.7450},
	{"Malviya Nagar", 26.8550, 75.8150},
	{"C-Scheme", 26.9100, 75.8000},
	{"Mansarovar", 26.8700, 75.7600},
	{"Vaishali Nagar", 26.9150, 75.7400},
	{"Bani Park", 26.9300, 75.7950},
	{"Sitapura", 26.7750, 75.8500},
	{"Ajmer Road, Near Durgapura", 26.8500, 75.7900},
	{"Ajmer Road, Sanganer", 26.8200, 75.7900},
	{"Raja Park", 26.8950, 75.8300},
	{"Pink City", 26.9240, 75.8270},
	{DefaultSeedLocation, 26.9124, 75.7873},
}

func seedCoordinates(location string) (lat, lng float64, ok bool) {
	for _, a := range seedAreas {
		if strings.HasPrefix(location, a.prefix) {
			return a.lat, a.lng, true
		}
	}
	return 0, 0, false
}

// placeSeedLocations gives known seeded locations their map position.
func placeSeedLocations(ctx context.Context, locations *repository.LocationRepository) error {
	list, err := locations.List(ctx, false)
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	for _, loc := range list {
		if loc.HasCoordinates() {
			continue
		}
		lat, lng, ok := seedCoordinates(loc.Name)
		if !ok {
			continue
		}
		d := repository.LocationDetails{Latitude: &lat, Longitude: &lng}
		if _, err := locations.UpdateDetails(ctx, loc.Name, d); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("place %s: %w", loc.Name, err)
		}
	}
	return nil
}

// SeedNonCompliantSamples inserts demo data for the QC tools.
func SeedNonCompliantSamples(ctx context.Context, db *gorm.DB, count int, location string) error {
	if err := insertSamples(ctx, db, NonCompliantSamples(count, location, time.Now())); err != nil {
		return err
	}
	locations := repository.NewLocationRepository(db)
	if err := locations.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh locations: %w", err)
	}
	return placeSeedLocations(ctx, locations)
}

func insertSamples(ctx context.Context, db *gorm.DB, samples []models.Sample) error {
	if err := repository.NewSampleRepository(db).CreateBatch(ctx, samples); err != nil {
		return fmt.Errorf("insert samples: %w", err)
	}
	safe, borderline, unsafe := 0, 0, 0
	for _, s := range samples {
		switch s.Status {
		case quality.StatusSafe:
			safe++
		case quality.StatusBorderline:
			borderline++
		default:
			unsafe++
		}
	}
	log.Printf("✅ Seeded %d samples (safe %d, borderline %d, unsafe %d)", len(samples), safe, borderline, unsafe)
	return nil
}
