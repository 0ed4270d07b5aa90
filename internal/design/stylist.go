// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"strings"

	"brandstudio/internal/models"
)

// ApplyBrandStyle merges brand fonts, colors and generated content into a
// layout. The input slice is not modified.
//
// Every text element gets the primary font and primary color. The first
// element whose id contains "headline" gets the headline and the first
// whose id contains "body" gets the body, whatever their type. The first
// image element gets the image URL when there is one.
func ApplyBrandStyle(layout []models.DesignElement, content models.Content, profile *models.BrandProfile) models.Design {
	elements := make([]models.DesignElement, len(layout))
	copy(elements, layout)

	for i := range elements {
		if elements[i].Type == models.ElementText {
			elements[i].FontFamily = profile.FontPrimary
			elements[i].Color = profile.PrimaryColor
		}
	}

	if i := indexOf(elements, func(e models.DesignElement) bool { return strings.Contains(e.ID, "headline") }); i >= 0 {
		elements[i].Text = content.Headline
	}
	if i := indexOf(elements, func(e models.DesignElement) bool { return strings.Contains(e.ID, "body") }); i >= 0 {
		elements[i].Text = content.Body
	}
	if content.ImageURL != "" {
		if i := indexOf(elements, func(e models.DesignElement) bool { return e.Type == models.ElementImage }); i >= 0 {
			elements[i].Src = content.ImageURL
		}
	}

	return models.Design{Elements: elements, Brand: profile.Snapshot()}
}

func indexOf(elements []models.DesignElement, match func(models.DesignElement) bool) int {
	for i := range elements {
		if match(elements[i]) {
			return i
		}
	}
	return -1
}
