package handlers

import (
	"encoding/json"
	"fmt"
	"geonews/models"
	"geonews/utils"
	"html/template"
	"log"
	"net/http"
)

func personMarkers(persons []models.Person) []utils.Marker {
	markers := []utils.Marker{}
	for _, p := range persons {
		for _, rec := range p.Records {
			if rec.Address == nil {
				continue
			}
			subtitle := rec.Address.StreetAddress
			detail := ""
			if rec.Description != nil {
				detail = *rec.Description
			}
			markers = append(markers, utils.Marker{
				Key:      fmt.Sprintf("p-%d-%d", p.ID, rec.ID),
				Lat:      rec.Address.Latitude,
				Lng:      rec.Address.Longitude,
				Kind:     "person",
				Title:    p.FullName,
				Subtitle: subtitle,
				Detail:   detail,
			})
		}
	}
	return markers
}

func businessMarkers(businesses []models.Business) []utils.Marker {
	markers := []utils.Marker{}
	for _, b := range businesses {
		if b.Address == nil {
			continue
		}
		markers = append(markers, utils.Marker{
			Key:      fmt.Sprintf("b-%d", b.ID),
			Lat:      b.Address.Latitude,
			Lng:      b.Address.Longitude,
			Kind:     "business",
			Title:    b.Name,
			Subtitle: b.Address.StreetAddress,
		})
	}
	return markers
}

func newsMarkers(news []models.NewsItem) []utils.Marker {
	markers := []utils.Marker{}
	for _, n := range news {
		addr := n.Address
		if addr == nil && n.PersonRecord != nil {
			addr = n.PersonRecord.Address
		}
		if addr == nil {
			continue
		}
		markers = append(markers, utils.Marker{
			Key:      fmt.Sprintf("n-%d", n.ID),
			Lat:      addr.Latitude,
			Lng:      addr.Longitude,
			Kind:     "news",
			Title:    n.Title,
			Subtitle: addr.StreetAddress,
			Detail:   n.Content,
		})
	}
	return markers
}

func renderMapPage(w http.ResponseWriter, templateFile string, data models.MapPageData) {
	tmpl, err := template.ParseFiles(templateFile)
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err = tmpl.Execute(w, data); err != nil {
		log.Println("error rendering map page: ", err)
	}
}

// clusteredJSON serializes the clustered markers for the map script. The
// result is marked as trusted JS because it comes from json.Marshal over
// our own types, never from request input.
func clusteredJSON(markers []utils.Marker) (template.JS, error) {
	groups := utils.GroupMarkers(markers, utils.DefaultClusterTolerance)
	out, err := json.Marshal(groups)
	if err != nil {
		return "", err
	}
	return template.JS(out), nil
}

// MapHandler renders the main map with clustered person and business
// markers.
func MapHandler(w http.ResponseWriter, r *http.Request, creds *utils.CredentialStore, api *utils.APIClient) {
	sid := utils.SessionID(r)

	data := models.MapPageData{}
	if session, ok := creds.Load(r.Context(), sid); ok {
		data.User = &session.User
	}

	markers := []utils.Marker{}
	persons, err := api.FetchPersons(r.Context(), sid)
	if err != nil {
		log.Println("error fetching persons: ", err)
		data.Error = "could not load map data. try again."
	} else {
		markers = append(markers, personMarkers(persons)...)
	}

	businesses, err := api.FetchBusinesses(r.Context(), sid)
	if err != nil {
		log.Println("error fetching businesses: ", err)
		if data.Error == "" {
			data.Error = "could not load map data. try again."
		}
	} else {
		markers = append(markers, businessMarkers(businesses)...)
	}

	data.MarkersJSON, err = clusteredJSON(markers)
	if err != nil {
		log.Println("error encoding markers: ", err)
		data.MarkersJSON = "[]"
	}

	renderMapPage(w, "./ui/html/map.html", data)
}

// NewsMapHandler renders geocoded news on the map.
func NewsMapHandler(w http.ResponseWriter, r *http.Request, creds *utils.CredentialStore, api *utils.APIClient) {
	sid := utils.SessionID(r)

	data := models.MapPageData{}
	if session, ok := creds.Load(r.Context(), sid); ok {
		data.User = &session.User
	}

	news, err := api.FetchNews(r.Context(), sid)
	if err != nil {
		log.Println("error fetching news for map: ", err)
		data.Error = "could not load news. try again."
		news = nil
	}

	data.MarkersJSON, err = clusteredJSON(newsMarkers(news))
	if err != nil {
		log.Println("error encoding markers: ", err)
		data.MarkersJSON = "[]"
	}

	renderMapPage(w, "./ui/html/news-map.html", data)
}
