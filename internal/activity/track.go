package activity

import "github.com/starford/dagaz/internal/models"

// Intensity policy for the editorial entry points: publishing something new
// counts for more than editing it, media uploads count least.
const (
	intensityNew    = 3
	intensityUpdate = 2
	intensityMedia  = 1
)

// TrackBlogPost records a post activity dated today. New posts carry a
// higher intensity than edits of existing ones. The returned bool reports
// whether the write merged into an existing record for today.
func (s *Store) TrackBlogPost(title string, isUpdate bool) (models.Activity, bool, error) {
	intensity := intensityNew
	desc := "Published a new blog post"
	if isUpdate {
		intensity = intensityUpdate
		desc = "Updated a blog post"
	}
	return s.Add(AddInput{
		Date:        s.Today(),
		Type:        models.TypePost,
		Title:       title,
		Description: desc,
		Intensity:   intensity,
	})
}

// TrackProject records a project activity dated today, with the same
// new-versus-edit intensity policy as blog posts.
func (s *Store) TrackProject(title string, isUpdate bool) (models.Activity, bool, error) {
	intensity := intensityNew
	desc := "Published a new project"
	if isUpdate {
		intensity = intensityUpdate
		desc = "Updated a project"
	}
	return s.Add(AddInput{
		Date:        s.Today(),
		Type:        models.TypeProject,
		Title:       title,
		Description: desc,
		Intensity:   intensity,
	})
}

// TrackMedia records a media activity for an uploaded file at fixed low
// intensity.
func (s *Store) TrackMedia(filename string) (models.Activity, bool, error) {
	return s.Add(AddInput{
		Date:        s.Today(),
		Type:        models.TypeMedia,
		Title:       filename,
		Description: "Uploaded media",
		Intensity:   intensityMedia,
	})
}
