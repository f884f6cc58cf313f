package listing

import (
	"strings"

	"stayfinder/utils"
)

func (in *ListingInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Title == "":
		return utils.InvalidInput("Title is required")
	case in.Description == "":
		return utils.InvalidInput("Description is required")
	case in.Location.Address == "" || in.Location.City == "" || in.Location.State == "" || in.Location.Country == "":
		return utils.InvalidInput("Address, city, state and country are required")
	case len(in.Images) == 0:
		return utils.InvalidInput("At least one image is required")
	case in.PricePerNight < 0:
		return utils.InvalidInput("Price per night cannot be negative")
	case in.Bedrooms < 1 || in.Bathrooms < 1 || in.MaxGuests < 1:
		return utils.InvalidInput("Bedrooms, bathrooms and max guests must be at least 1")
	case len(in.AvailableDates) == 0:
		return utils.InvalidInput("At least one availability range is required")
	}

	for _, r := range in.AvailableDates {
		if !r.End.After(r.Start) {
			return utils.InvalidRange("Availability end must be after start")
		}
	}

	if c := in.Location.Coordinates; c != nil {
		if len(c.Coordinates) != 2 {
			return utils.InvalidInput("Coordinates must be [longitude, latitude]")
		}
		c.Type = "Point"
	}
	return nil
}

func (in ReviewInput) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return utils.InvalidInput("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return utils.InvalidInput("Comment is required")
	}
	return nil
}
