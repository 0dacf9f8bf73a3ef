package launcher

import (
	"strings"

	"adlaunch/internal/models"
)

// BuildTargeting maps the request's audience fields onto a Graph targeting
// spec. Unknown gender and device words widen the audience instead of
// failing the launch.
func BuildTargeting(req *models.CampaignRequest, countries, publisherPlatforms []string) models.TargetingSpec {
	spec := models.TargetingSpec{
		GeoLocations:       models.GeoLocations{Countries: targetCountries(req.Locations, countries)},
		Genders:            targetGenders(req.TargetGender),
		PublisherPlatforms: append([]string(nil), publisherPlatforms...),
		DevicePlatforms:    targetDevices(req.Devices),
	}
	if req.TargetAge > 0 {
		spec.AgeMin = req.TargetAge
		spec.AgeMax = req.TargetAge
	}
	return spec
}

func targetCountries(locations, fallback []string) []string {
	var out []string
	for _, loc := range locations {
		loc = strings.ToUpper(strings.TrimSpace(loc))
		if loc != "" {
			out = append(out, loc)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}

// targetGenders follows the platform encoding: 1 is male, 2 is female.
func targetGenders(gender string) []int {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return []int{1}
	case "female":
		return []int{2}
	default:
		return nil
	}
}

func targetDevices(devices []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, d := range devices {
		var platform string
		switch strings.ToLower(strings.TrimSpace(d)) {
		case "smartphone", "mobile", "tablet":
			platform = "mobile"
		case "desktop", "computer":
			platform = "desktop"
		default:
			continue
		}
		if !seen[platform] {
			seen[platform] = true
			out = append(out, platform)
		}
	}
	return out
}
