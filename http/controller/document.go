package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-document-service/entity"
	"github.com/tnqbao/gau-document-service/http/controller/dto"
	"github.com/tnqbao/gau-document-service/infra/produce"
	"github.com/tnqbao/gau-document-service/repository"
	"github.com/tnqbao/gau-document-service/utils"
)

// HandleDocument is the single entry point for every document route. The
// handler is a pure function of (request, storage backend): nothing is
// cached or shared between invocations.
func (ctrl *Controller) HandleDocument(c *gin.Context) {
	desc, routeErr := ParseRequest(c.Request.Method, c.Request.URL.Path, c.Query("request"))
	if routeErr != nil {
		ctrl.Infra.Logger.WarningWithContextf(c.Request.Context(), "[Document] Rejected %s %s: %s",
			c.Request.Method, c.Request.URL.Path, routeErr.Message)
		if routeErr.Status == 405 {
			utils.JSON405(c, routeErr.Message)
		} else {
			utils.JSON400(c, routeErr.Message)
		}
		return
	}

	switch desc.Op {
	case OpPreflight:
		// CORS headers come from the middleware
		utils.JSON200(c, gin.H{})
	case OpList:
		ctrl.listItems(c, desc)
	case OpGet:
		ctrl.getItem(c, desc)
	case OpCreate:
		ctrl.createItem(c, desc)
	case OpBulkCreate:
		ctrl.bulkCreateItems(c, desc)
	case OpMergeUpdate:
		ctrl.updateItem(c, desc, true)
	case OpReplaceUpdate:
		ctrl.updateItem(c, desc, false)
	case OpDeleteItem:
		ctrl.deleteItem(c, desc)
	case OpDeleteAll:
		ctrl.deleteAllItems(c, desc)
	}
}

func (ctrl *Controller) listItems(c *gin.Context, desc *Descriptor) {
	ctx := c.Request.Context()
	items, err := ctrl.Repository.DocumentRepo.List(ctx, desc.Collection)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to list collection %s", desc.Collection.Name())
		utils.JSON500(c, "Failed to list items")
		return
	}
	// backend listing order is key-lexicographic and not a contract
	entity.SortByID(items)
	utils.JSON200(c, dto.ListResponseDTO{
		Collection: desc.Collection.Name(),
		Count:      len(items),
		Items:      items,
	})
}

func (ctrl *Controller) getItem(c *gin.Context, desc *Descriptor) {
	ctx := c.Request.Context()
	item, err := ctrl.Repository.DocumentRepo.Get(ctx, desc.Collection, desc.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSON404(c, fmt.Sprintf("Item %s not found in collection %s", desc.ItemID, desc.Collection.Name()))
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to get item %s/%s", desc.Collection.Name(), desc.ItemID)
		utils.JSON500(c, "Failed to get item")
		return
	}
	utils.JSON200(c, item)
}

func (ctrl *Controller) createItem(c *gin.Context, desc *Descriptor) {
	ctx := c.Request.Context()
	payload, bindErr := bindObjectBody(c, "Request body is required for POST")
	if bindErr != nil {
		utils.JSON400(c, bindErr.Message)
		return
	}

	// A caller-supplied id travels in the body; creation with an existing
	// id overwrites (upsert).
	id := ""
	if v, ok := payload[entity.FieldID].(string); ok {
		id = v
	}

	item, err := ctrl.Repository.DocumentRepo.Create(ctx, desc.Collection, id, payload)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to create item in collection %s", desc.Collection.Name())
		utils.JSON500(c, "Failed to create item")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Document] Created item %s in collection %s", item.ID, desc.Collection.Name())
	ctrl.publishEvent(c, produce.ActionCreated, desc.Collection.Name(), item.ID)
	utils.JSON201(c, item)
}

func (ctrl *Controller) bulkCreateItems(c *gin.Context, desc *Descriptor) {
	ctx := c.Request.Context()
	payloads, bindErr := bindArrayBody(c)
	if bindErr != nil {
		utils.JSON400(c, bindErr.Message)
		return
	}

	created, err := ctrl.Repository.DocumentRepo.CreateMany(ctx, desc.Collection, payloads)
	if err != nil {
		// Writes are independent: whatever was persisted before the fault
		// stays visible, and the caller learns how far the batch got.
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Bulk create in collection %s failed after %d of %d items",
			desc.Collection.Name(), len(created), len(payloads))
		utils.JSON500(c, fmt.Sprintf("Created %d of %d items before a storage failure", len(created), len(payloads)))
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Document] Created %d items in collection %s", len(created), desc.Collection.Name())
	for _, item := range created {
		ctrl.publishEvent(c, produce.ActionCreated, desc.Collection.Name(), item.ID)
	}
	utils.JSON201(c, dto.BulkCreateResponseDTO{
		Message: fmt.Sprintf("Created %d items", len(created)),
		Count:   len(created),
		Items:   created,
	})
}

func (ctrl *Controller) updateItem(c *gin.Context, desc *Descriptor, merge bool) {
	ctx := c.Request.Context()
	payload, bindErr := bindObjectBody(c, "Request body is required for PUT/PATCH")
	if bindErr != nil {
		utils.JSON400(c, bindErr.Message)
		return
	}

	item, err := ctrl.Repository.DocumentRepo.Update(ctx, desc.Collection, desc.ItemID, payload, merge)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to update item %s/%s", desc.Collection.Name(), desc.ItemID)
		utils.JSON500(c, "Failed to update item")
		return
	}

	ctrl.publishEvent(c, produce.ActionUpdated, desc.Collection.Name(), item.ID)
	utils.JSON200(c, item)
}

func (ctrl *Controller) deleteItem(c *gin.Context, desc *Descriptor) {
	ctx := c.Request.Context()
	if err := ctrl.Repository.DocumentRepo.Delete(ctx, desc.Collection, desc.ItemID); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to delete item %s/%s", desc.Collection.Name(), desc.ItemID)
		utils.JSON500(c, "Failed to delete item")
		return
	}

	ctrl.publishEvent(c, produce.ActionDeleted, desc.Collection.Name(), desc.ItemID)
	utils.JSON200(c, dto.DeleteResponseDTO{
		Message: fmt.Sprintf("Item %s deleted from collection %s", desc.ItemID, desc.Collection.Name()),
	})
}

func (ctrl *Controller) deleteAllItems(c *gin.Context, desc *Descriptor) {
	ctx := c.Request.Context()
	count, err := ctrl.Repository.DocumentRepo.DeleteAll(ctx, desc.Collection)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to delete collection %s", desc.Collection.Name())
		utils.JSON500(c, "Failed to delete items")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Document] Deleted %d items from collection %s", count, desc.Collection.Name())
	ctrl.publishEvent(c, produce.ActionPurged, desc.Collection.Name(), "")
	utils.JSON200(c, dto.DeleteAllResponseDTO{
		Message: fmt.Sprintf("All items deleted from collection %s", desc.Collection.Name()),
		Count:   count,
	})
}

// publishEvent emits a change notification when a broker is configured.
// Publish failures are logged, never surfaced to the caller.
func (ctrl *Controller) publishEvent(c *gin.Context, action, collection, itemID string) {
	if ctrl.Infra.Produce == nil {
		return
	}
	ctx := c.Request.Context()
	if err := ctrl.Infra.Produce.DocumentService.PublishDocumentEvent(ctx, action, collection, itemID); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Document] Failed to publish %s event for collection %s", action, collection)
	}
}

func bindObjectBody(c *gin.Context, requiredMessage string) (map[string]interface{}, *RouteError) {
	var payload map[string]interface{}
	if err := decodeBody(c, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, badRoute(requiredMessage)
	}
	return payload, nil
}

func bindArrayBody(c *gin.Context) ([]map[string]interface{}, *RouteError) {
	var payloads []map[string]interface{}
	if err := decodeBody(c, &payloads); err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, badRoute("Request body must be a non-empty JSON array for bulk create")
	}
	return payloads, nil
}

func decodeBody(c *gin.Context, out interface{}) *RouteError {
	err := json.NewDecoder(c.Request.Body).Decode(out)
	if err == nil || errors.Is(err, io.EOF) {
		// io.EOF means an empty body; the caller decides if that is allowed
		return nil
	}
	return badRoute("Request body is not valid JSON: " + err.Error())
}
