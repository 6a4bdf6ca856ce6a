package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type adminPayload struct {
	Name      string `json:"name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role" binding:"required"`
	CountryID *int64 `json:"countryId"`
	CityID    *int64 `json:"cityId"`
	Status    string `json:"status"`
}

// GET /api/admins
func (a *API) GetAdmins(c *gin.Context) {
	repo := repositories.AdminRepo{DB: a.DB}
	srt, pg := ListParams(c, "name")

	list, meta, err := repo.List(repositories.AdminFilter{
		Search: c.Query("q"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "admins", list, meta)
}

// GET /api/admins/:id
func (a *API) GetAdminByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.AdminRepo{DB: a.DB}

	admin, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if admin.CountryID != nil {
		if err := access.AuthorizeMutation(Principal(c), *admin.CountryID, admin.CityID, false); err != nil {
			RespondError(c, http.StatusNotFound, "admin not found", nil)
			return
		}
	} else if !Principal(c).Role.IsSuper() {
		RespondError(c, http.StatusNotFound, "admin not found", nil)
		return
	}
	Respond(c, http.StatusOK, "admin", admin)
}

// POST /api/admins
func (a *API) CreateAdmin(c *gin.Context) {
	var req adminPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Password == "" {
		RespondError(c, http.StatusBadRequest, "password is required", nil)
		return
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		RespondError(c, http.StatusBadRequest, "unknown role "+req.Role, nil)
		return
	}
	p := Principal(c)
	if err := access.AuthorizeAdminChange(p, role, role); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.ValidateAssignment(role, req.CountryID, req.CityID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.CountryID != nil {
		if err := access.AuthorizeMutation(p, *req.CountryID, req.CityID, false); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	repo := repositories.AdminRepo{DB: a.DB}
	username := utils.TrimOrEmpty(req.Username)
	if exists, err := repo.UsernameExists(username, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "username already taken", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not hash password", nil)
		return
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	id, err := repo.Create(models.Admin{
		Name:      utils.NormalizeSpace(req.Name),
		Username:  username,
		Email:     utils.TrimOrEmpty(req.Email),
		Phone:     utils.TrimOrEmpty(req.Phone),
		Role:      role,
		CountryID: req.CountryID,
		CityID:    req.CityID,
		Status:    status,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	admin, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "admin created", admin)
}

// PUT /api/admins/:id
func (a *API) UpdateAdmin(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.AdminRepo{DB: a.DB}

	admin, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req adminPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	newRole := domain.Role(req.Role)
	if !newRole.Valid() {
		RespondError(c, http.StatusBadRequest, "unknown role "+req.Role, nil)
		return
	}

	p := Principal(c)
	if err := access.AuthorizeAdminChange(p, admin.Role, newRole); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.ValidateAssignment(newRole, req.CountryID, req.CityID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if admin.CountryID != nil {
		if err := access.AuthorizeMutation(p, *admin.CountryID, admin.CityID, false); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	// the requested assignment must be in scope too, or a restricted admin
	// could relocate accounts into territory they have no authority over
	if req.CountryID != nil {
		if err := access.AuthorizeMutation(p, *req.CountryID, req.CityID, false); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	username := utils.TrimOrEmpty(req.Username)
	if exists, err := repo.UsernameExists(username, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "username already taken", nil)
		return
	}

	hash := ""
	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "could not hash password", nil)
			return
		}
		hash = string(h)
	}

	admin.Name = utils.NormalizeSpace(req.Name)
	admin.Username = username
	admin.Email = utils.TrimOrEmpty(req.Email)
	admin.Phone = utils.TrimOrEmpty(req.Phone)
	admin.Role = newRole
	admin.CountryID = req.CountryID
	admin.CityID = req.CityID
	if req.Status != "" {
		admin.Status = req.Status
	}

	if err := repo.Update(admin, hash); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "admin updated", updated)
}

// DELETE /api/admins/:id
func (a *API) DeleteAdmin(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.AdminRepo{DB: a.DB}

	admin, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	p := Principal(c)
	if err := access.AuthorizeAdminDelete(p, admin.ID, admin.Role); err != nil {
		RespondDomainError(c, err)
		return
	}
	if admin.CountryID != nil {
		if err := access.AuthorizeMutation(p, *admin.CountryID, admin.CityID, false); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "admin deleted", nil)
}
