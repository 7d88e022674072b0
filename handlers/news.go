package handlers

import (
	"errors"
	"fmt"
	"geonews/models"
	"geonews/utils"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxImageBytes = 5 << 20

var acceptedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// NewsHandler renders the news admin screen with all records.
func NewsHandler(w http.ResponseWriter, r *http.Request, creds *utils.CredentialStore, api *utils.APIClient) {
	sid := utils.SessionID(r)

	data := models.NewsPageData{}
	if session, ok := creds.Load(r.Context(), sid); ok {
		data.User = &session.User
	}

	news, err := api.FetchNews(r.Context(), sid)
	if err != nil {
		log.Println("error fetching news: ", err)
		data.Error = "could not load news. try again."
	} else {
		for i := range news {
			if news[i].Src != nil {
				resolved := utils.ResolveImageURL(*news[i].Src, api.BaseURL())
				news[i].Src = &resolved
			}
		}
		data.News = news
	}

	tmpl, err := template.ParseFiles("./ui/html/news.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err = tmpl.Execute(w, data); err != nil {
		log.Println("error rendering news page: ", err)
	}
}

// formField distinguishes an absent field (nil) from one submitted empty
// (pointer to ""). The update flow relies on that difference to leave an
// association untouched versus clearing it.
func formField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func parseNewsForm(r *http.Request) (models.NewsForm, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return models.NewsForm{}, errors.New("malformed form")
	}

	form := models.NewsForm{
		Title:          r.FormValue("title"),
		Content:        r.FormValue("content"),
		PersonRecordID: formField(r, "person_record_id"),
		AddressID:      formField(r, "address_id"),
	}
	if form.Title == "" || form.Content == "" {
		return models.NewsForm{}, errors.New("title and content are required")
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return form, nil
	}
	if err != nil {
		return models.NewsForm{}, errors.New("could not read image")
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		return models.NewsForm{}, errors.New("image is larger than 5MB")
	}
	if mime := header.Header.Get("Content-Type"); !acceptedImageMimes[mime] {
		return models.NewsForm{}, errors.New("image must be jpeg, png or webp")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil || len(data) > maxImageBytes {
		return models.NewsForm{}, errors.New("could not read image")
	}
	form.ImageName = header.Filename
	form.Image = data
	return form, nil
}

func newsFailure(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html")
	if errors.Is(err, utils.ErrUnauthorized) {
		fmt.Fprintf(w, "your session expired. sign in again.")
		return
	}
	fmt.Fprintf(w, "%s", err.Error())
}

// CreateNewsHandler creates a news record through the remote API.
func CreateNewsHandler(w http.ResponseWriter, r *http.Request, api *utils.APIClient) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, err := parseNewsForm(r)
	if err != nil {
		newsFailure(w, err)
		return
	}

	sid := utils.SessionID(r)
	if _, err := api.CreateNews(r.Context(), sid, form); err != nil {
		log.Println("error creating news: ", err)
		newsFailure(w, err)
		return
	}

	w.Header().Set("HX-Redirect", "/novedades")
	w.WriteHeader(http.StatusOK)
}

// UpdateNewsHandler updates a news record through the remote API.
func UpdateNewsHandler(w http.ResponseWriter, r *http.Request, api *utils.APIClient) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid news id", http.StatusBadRequest)
		return
	}

	form, err := parseNewsForm(r)
	if err != nil {
		newsFailure(w, err)
		return
	}

	sid := utils.SessionID(r)
	if _, err := api.UpdateNews(r.Context(), sid, id, form); err != nil {
		log.Println("error updating news: ", err)
		newsFailure(w, err)
		return
	}

	w.Header().Set("HX-Redirect", "/novedades")
	w.WriteHeader(http.StatusOK)
}

// DeleteNewsHandler deletes a news record through the remote API.
func DeleteNewsHandler(w http.ResponseWriter, r *http.Request, api *utils.APIClient) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid news id", http.StatusBadRequest)
		return
	}

	sid := utils.SessionID(r)
	if err := api.DeleteNews(r.Context(), sid, id); err != nil {
		log.Println("error deleting news: ", err)
		newsFailure(w, err)
		return
	}

	w.Header().Set("HX-Redirect", "/novedades")
	w.WriteHeader(http.StatusOK)
}
