package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/service"
)

// @Summary      Get own profile
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /users/profile [get]
func handleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

type updateProfileRequest struct {
	Name            *string   `json:"name"`
	Password        *string   `json:"password"`
	ContactNumber   *string   `json:"contactNumber"`
	CollegeName     *string   `json:"collegeName"`
	Branch          *string   `json:"branch"`
	Year            *string   `json:"year"`
	RollNo          *string   `json:"rollNo"`
	Bio             *string   `json:"bio"`
	ProfilePhoto    *string   `json:"profilePhoto"`
	Skills          *[]string `json:"skills"`
	CurrentLearning *[]string `json:"currentLearning"`

	HackathonParticipation *string              `json:"hackathonParticipation"`
	CodingContestRanks     *string              `json:"codingContestRanks"`
	Internship             *string              `json:"internship"`
	CollegeClubs           *string              `json:"collegeClubs"`
	ProfileLinks           *domain.ProfileLinks `json:"profileLinks"`
}

// @Summary      Update own profile
// @Description  Partial update; absent fields are left untouched
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input body updateProfileRequest true "Profile fields"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/profile [put]
func handleUpdateProfile(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentUser := CurrentUser(r)
		if currentUser == nil {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		user, err := userSvc.UpdateProfile(r.Context(), currentUser.ID, service.UpdateProfileInput{
			Name:            req.Name,
			Password:        req.Password,
			ContactNumber:   req.ContactNumber,
			CollegeName:     req.CollegeName,
			Branch:          req.Branch,
			Year:            req.Year,
			RollNo:          req.RollNo,
			Bio:             req.Bio,
			ProfilePhoto:    req.ProfilePhoto,
			Skills:          req.Skills,
			CurrentLearning: req.CurrentLearning,

			HackathonParticipation: req.HackathonParticipation,
			CodingContestRanks:     req.CodingContestRanks,
			Internship:             req.Internship,
			CollegeClubs:           req.CollegeClubs,
			ProfileLinks:           req.ProfileLinks,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// @Summary      List students
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /users/students [get]
func handleListStudents(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userSvc.ListStudents(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if users == nil {
			users = []*domain.User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// @Summary      Get a student by ID
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/students/{id} [get]
func handleGetStudent(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid student id"})
			return
		}
		user, err := userSvc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if user == nil {
			writeError(w, r, domain.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
