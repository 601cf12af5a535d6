package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to organizations and
// their memberships.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

// newOrganizationHandler creates a new organizationHandler.
func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		orgService: os,
	}
}

// registerOrganizationRoutes registers routes for managing organizations and
// nests all organization-scoped entity routes under /organizations/:org_id.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listUserOrganizations)
	}

	orgSpecific := rg.Group("/organizations/:org_id")
	{
		orgSpecific.GET("", h.getOrganization)
		orgSpecific.PUT("", h.updateOrganization)
		orgSpecific.DELETE("", h.deactivateOrganization)

		members := orgSpecific.Group("/members")
		{
			members.POST("", h.addMember)
			members.GET("", h.listMembers)
			members.PUT("/:user_id", h.updateMemberRole)
			members.DELETE("/:user_id", h.removeMember)
		}

		RegisterAccountRoutes(orgSpecific, services.Account, services.Journal)
		registerJournalRoutes(orgSpecific, services.Journal)
		registerCustomerRoutes(orgSpecific, services.Customer)
		registerVendorRoutes(orgSpecific, services.Vendor)
		registerItemRoutes(orgSpecific, services.Item)
		registerTaxRoutes(orgSpecific, services.Tax)
		registerInvoiceRoutes(orgSpecific, services.Invoice)
		registerBillRoutes(orgSpecific, services.Bill)
		registerPaymentRoutes(orgSpecific, services.Payment)
		registerReportingRoutes(orgSpecific, services.Reporting)
	}
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates a new organization and assigns the creator as OWNER.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listUserOrganizations godoc
// @Summary List organizations for current user
// @Description Retrieves the organizations the authenticated user is a member of.
// @Tags organizations
// @Produce json
// @Success 200 {array} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list organizations"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listUserOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgs, err := h.orgService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "list organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Description Retrieves details of a specific organization. Members only.
// @Tags organizations
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to retrieve organization"
// @Security BearerAuth
// @Router /organizations/{org_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.orgService.GetOrganizationByID(c.Request.Context(), orgID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// updateOrganization godoc
// @Summary Update an organization
// @Description Updates an organization's details. Requires ADMIN role.
// @Tags organizations
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to update organization"
// @Security BearerAuth
// @Router /organizations/{org_id} [put]
func (h *organizationHandler) updateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.orgService.UpdateOrganization(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update organization")
		return
	}

	logger.Info("Organization updated", slog.String("organization_id", orgID))
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Description Marks an organization as inactive. Requires OWNER role.
// @Tags organizations
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to deactivate organization"
// @Security BearerAuth
// @Router /organizations/{org_id} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.orgService.DeactivateOrganization(c.Request.Context(), orgID, userID); err != nil {
		respondWithError(c, logger, err, "deactivate organization")
		return
	}

	logger.Info("Organization deactivated", slog.String("organization_id", orgID))
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a member to an organization
// @Description Adds a user to the organization with a specific role. Requires ADMIN role.
// @Tags organizations
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Already a member"
// @Failure 500 {object} map[string]string "Failed to add member"
// @Security BearerAuth
// @Router /organizations/{org_id}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.orgService.AddMember(c.Request.Context(), requestingUserID, req.UserID, orgID, req.Role); err != nil {
		respondWithError(c, logger, err, "add member")
		return
	}

	logger.Info("Member added", slog.String("organization_id", orgID), slog.String("member_user_id", req.UserID))
	c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

// listMembers godoc
// @Summary List organization members
// @Description Retrieves the memberships of an organization. Members only.
// @Tags organizations
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /organizations/{org_id}/members [get]
func (h *organizationHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.orgService.ListMembers(c.Request.Context(), orgID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// updateMemberRole godoc
// @Summary Update a member's role
// @Description Changes a member's role in the organization. Requires ADMIN role.
// @Tags organizations
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param user_id path string true "Member user ID"
// @Param role body dto.UpdateMemberRoleRequest true "New role"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to update member role"
// @Security BearerAuth
// @Router /organizations/{org_id}/members/{user_id} [put]
func (h *organizationHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMemberRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.orgService.UpdateMemberRole(c.Request.Context(), requestingUserID, targetUserID, orgID, req.Role); err != nil {
		respondWithError(c, logger, err, "update member role")
		return
	}

	logger.Info("Member role updated", slog.String("organization_id", orgID), slog.String("member_user_id", targetUserID))
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// removeMember godoc
// @Summary Remove a member from an organization
// @Description Removes a user's membership. Requires ADMIN role.
// @Tags organizations
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param user_id path string true "Member user ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to remove member"
// @Security BearerAuth
// @Router /organizations/{org_id}/members/{user_id} [delete]
func (h *organizationHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.orgService.RemoveMember(c.Request.Context(), requestingUserID, targetUserID, orgID); err != nil {
		respondWithError(c, logger, err, "remove member")
		return
	}

	logger.Info("Member removed", slog.String("organization_id", orgID), slog.String("member_user_id", targetUserID))
	c.Status(http.StatusNoContent)
}
