package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RickBillie-pixel/scraper/models"
)

// formsAnalysis inventories form elements and their fields.
func formsAnalysis(p *page) models.FormsAnalysis {
	fa := models.FormsAnalysis{Forms: []models.FormInfo{}}

	p.doc.FindMatcher(selForm).Each(func(_ int, s *goquery.Selection) {
		form := models.FormInfo{
			Action: s.AttrOr("action", ""),
			Method: strings.ToUpper(s.AttrOr("method", "get")),
			ID:     s.AttrOr("id", ""),
			Inputs: []models.FormField{},
		}

		s.FindMatcher(selFormField).Each(func(_ int, f *goquery.Selection) {
			field := models.FormField{
				Type:        fieldType(f),
				Name:        f.AttrOr("name", ""),
				Placeholder: f.AttrOr("placeholder", ""),
			}
			_, field.Required = f.Attr("required")

			form.Inputs = append(form.Inputs, field)
			form.FieldCount++
			if field.Required {
				form.RequiredFields++
			}
		})

		form.HasSubmit = hasSubmit(s)

		fa.Forms = append(fa.Forms, form)
		fa.TotalForms++
	})

	return fa
}

// fieldType is the input's type attribute (default text); textarea and
// select report their element name.
func fieldType(f *goquery.Selection) string {
	if name := goquery.NodeName(f); name != "input" {
		return name
	}
	return f.AttrOr("type", "text")
}

// hasSubmit reports whether the form contains a submit control: an input
// of type submit, or a button not explicitly typed button/reset.
func hasSubmit(form *goquery.Selection) bool {
	found := false
	form.Find("input[type='submit'], button").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) == "button" {
			t := strings.ToLower(s.AttrOr("type", "submit"))
			if t == "button" || t == "reset" {
				return true
			}
		}
		found = true
		return false
	})
	return found
}
