package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/users?role=&q=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))
	role := strings.TrimSpace(ctx.URLParamDefault("role", ""))

	query := storage.DB.Model(&models.User{})
	if role != "" {
		// Roles are stored as a JSON array, e.g. ["grower","landowner"].
		query = query.Where("roles::text LIKE ?", "%\""+role+"\"%")
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ? OR lower(username) LIKE ?",
			like, like, like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// PATCH /admin/users/:id/role { role, action } — super_admin only, enforced
// by middleware. Action is "add" (default) or "remove".
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}

	var body struct {
		Role   string `json:"role"`
		Action string `json:"action"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Role == "" {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "role is required", ctx)
		return
	}
	switch body.Role {
	case models.RoleGrower, models.RoleLandowner, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "unknown role", ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := user

	var roles []string
	if user.Roles != nil {
		json.Unmarshal(user.Roles, &roles)
	}
	if body.Action == "remove" {
		kept := roles[:0]
		for _, r := range roles {
			if r != body.Role {
				kept = append(kept, r)
			}
		}
		roles = kept
	} else if !user.HasRole(body.Role) {
		roles = append(roles, body.Role)
	}
	rolesJSON, _ := json.Marshal(roles)
	user.Roles = rolesJSON

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.role_update", "user", user.ID, before, user)

	ctx.JSON(iris.Map{"data": &user})
}
