package models

// Book is a catalogued title. Only title and author are mandatory; the rest
// is display metadata. PublishYear is free text on purpose (the data set
// contains values like "1975頃").
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PublishYear string `json:"publishYear,omitempty"`
	Description string `json:"description,omitempty"`
}

// Recommender is a person or organization credited with recommending books.
type Recommender struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Industry     string `json:"industry,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// Recommendation is the join row between a book and a recommender, carrying
// the commentary around the endorsement.
type Recommendation struct {
	ID                   int    `json:"id"`
	BookID               int    `json:"bookId"`
	RecommenderID        int    `json:"recommenderId"`
	Comment              string `json:"comment,omitempty"`
	RecommendationDate   string `json:"recommendationDate,omitempty"`
	RecommendationMedium string `json:"recommendationMedium,omitempty"`
	Source               string `json:"source,omitempty"`
	SourceURL            string `json:"sourceUrl,omitempty"`
	Reason               string `json:"reason,omitempty"`
}

// CompleteRecommendation is a Recommendation resolved with both ends of the
// relation. Read-only composition, never persisted as such.
type CompleteRecommendation struct {
	Recommendation
	Book        Book        `json:"book"`
	Recommender Recommender `json:"recommender"`
}

type InsertBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PublishYear string `json:"publishYear,omitempty"`
	Description string `json:"description,omitempty"`
}

type InsertRecommender struct {
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Industry     string `json:"industry,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

type InsertRecommendation struct {
	BookID               int    `json:"bookId"`
	RecommenderID        int    `json:"recommenderId"`
	Comment              string `json:"comment,omitempty"`
	RecommendationDate   string `json:"recommendationDate,omitempty"`
	RecommendationMedium string `json:"recommendationMedium,omitempty"`
	Source               string `json:"source,omitempty"`
	SourceURL            string `json:"sourceUrl,omitempty"`
	Reason               string `json:"reason,omitempty"`
}

// CombinedInsert is the one-shot payload that creates (or reuses) a book and
// a recommender and always creates the recommendation linking them.
type CombinedInsert struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PublishYear string `json:"publishYear,omitempty"`
	Description string `json:"description,omitempty"`

	RecommenderName string `json:"recommenderName"`
	RecommenderOrg  string `json:"recommenderOrg,omitempty"`
	Industry        string `json:"industry,omitempty"`

	Comment              string `json:"comment,omitempty"`
	RecommendationDate   string `json:"recommendationDate,omitempty"`
	RecommendationMedium string `json:"recommendationMedium,omitempty"`
	Source               string `json:"source,omitempty"`
	SourceURL            string `json:"sourceUrl,omitempty"`
	Reason               string `json:"reason,omitempty"`
}

// Patch DTOs distinguish "not provided" (nil) from "set to empty".
type BookPatch struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Category    *string `json:"category,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	PublishYear *string `json:"publishYear,omitempty"`
	Description *string `json:"description,omitempty"`
}

type RecommenderPatch struct {
	Name         *string `json:"name,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

type RecommendationPatch struct {
	BookID               *int    `json:"bookId,omitempty"`
	RecommenderID        *int    `json:"recommenderId,omitempty"`
	Comment              *string `json:"comment,omitempty"`
	RecommendationDate   *string `json:"recommendationDate,omitempty"`
	RecommendationMedium *string `json:"recommendationMedium,omitempty"`
	Source               *string `json:"source,omitempty"`
	SourceURL            *string `json:"sourceUrl,omitempty"`
	Reason               *string `json:"reason,omitempty"`
}

// ImportRow is one semantically mapped row of a bulk import batch.
type ImportRow struct {
	Title              string `json:"title"`
	Author             string `json:"author"`
	RecommenderName    string `json:"recommenderName"`
	RecommenderOrg     string `json:"recommenderOrg,omitempty"`
	Comment            string `json:"comment,omitempty"`
	RecommendationDate string `json:"recommendationDate,omitempty"`
	Reason             string `json:"reason,omitempty"`
	Category           string `json:"category,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
	PublishYear        string `json:"publishYear,omitempty"`
	Description        string `json:"description,omitempty"`
	Source             string `json:"source,omitempty"`
	SourceURL          string `json:"sourceUrl,omitempty"`
}

// SuggestedCategories is the fixed set offered by admin forms. Category stays
// free text; this list is advisory only.
var SuggestedCategories = []string{
	"ビジネス", "社会科学", "歴史", "SF", "科学", "小説", "投資", "経営", "自己啓発", "哲学",
}
