// Package docs registers the OpenAPI description of the HTTP API with swag, so
// echo-swagger can serve it under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"swagger": "2.0",
	"info": {
		"title": "{{.Title}}",
		"description": "{{escape .Description}}",
		"version": "{{.Version}}"
	},
	"basePath": "{{.BasePath}}",
	"paths": {
		"/orders": {
			"get": {
				"summary": "List the actor's orders, newest first",
				"tags": [
					"orders"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "orders",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/OrderSummary"
							}
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "bad limit",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "limit",
						"in": "query",
						"type": "integer",
						"description": "maximum number of orders"
					}
				]
			},
			"post": {
				"summary": "Check out the customer's cart",
				"tags": [
					"orders"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "order created",
						"schema": {
							"$ref": "#/definitions/CreateOrderResponse"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "invalid request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "not a customer",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "cart is empty or an item is unavailable",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CreateOrderRequest"
						}
					}
				]
			}
		},
		"/orders/{id}": {
			"get": {
				"summary": "Full order snapshot with items, event trail and restaurant summary",
				"tags": [
					"orders"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "snapshot",
						"schema": {
							"$ref": "#/definitions/OrderSnapshot"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "not a participant",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown order",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "order id"
					}
				]
			}
		},
		"/orders/{id}/status": {
			"post": {
				"summary": "Request a status transition",
				"tags": [
					"orders"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "done"
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "unknown status",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "actor may not apply this transition",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown order",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "transition is not allowed from the current status",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "order id"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ChangeOrderStatusRequest"
						}
					}
				]
			}
		},
		"/orders/{id}/assign": {
			"post": {
				"summary": "Attach a free delivery partner",
				"tags": [
					"delivery"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "done"
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "admin only",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown order",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "no partner available or already assigned",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "order id"
					}
				]
			}
		},
		"/orders/{id}/location": {
			"post": {
				"summary": "Report the assigned partner's position",
				"tags": [
					"delivery"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "done"
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "invalid coordinates",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "not the assigned partner",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown order",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "order id"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ReportLocationRequest"
						}
					}
				]
			}
		},
		"/orders/{id}/payment": {
			"post": {
				"summary": "Record the payment status",
				"tags": [
					"orders"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "done"
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "unknown payment status",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "admin only",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown order",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "order id"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/MarkPaymentRequest"
						}
					}
				]
			}
		},
		"/cart": {
			"get": {
				"summary": "The customer's cart",
				"tags": [
					"cart"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "cart",
						"schema": {
							"$ref": "#/definitions/CartView"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "not a customer",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"summary": "Empty the cart",
				"tags": [
					"cart"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "done"
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "not a customer",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/cart/items": {
			"post": {
				"summary": "Add a menu item",
				"tags": [
					"cart"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "cart",
						"schema": {
							"$ref": "#/definitions/CartView"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "invalid quantity",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown menu item",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "item belongs to another restaurant or is unavailable",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/AddToCartRequest"
						}
					}
				]
			}
		},
		"/cart/items/{menuItemId}": {
			"put": {
				"summary": "Set a line's quantity, 0 removes it",
				"tags": [
					"cart"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "cart",
						"schema": {
							"$ref": "#/definitions/CartView"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "invalid quantity",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "menuItemId",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "menu item id"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/UpdateCartItemRequest"
						}
					}
				]
			},
			"delete": {
				"summary": "Remove a line",
				"tags": [
					"cart"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "cart",
						"schema": {
							"$ref": "#/definitions/CartView"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "menuItemId",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "menu item id"
					}
				]
			}
		},
		"/couriers": {
			"post": {
				"summary": "Register a delivery partner",
				"tags": [
					"delivery"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "registered",
						"schema": {
							"$ref": "#/definitions/CourierView"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"400": {
						"description": "invalid request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "admin only",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "already registered",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CreateCourierRequest"
						}
					}
				]
			}
		},
		"/couriers/free": {
			"get": {
				"summary": "Partners that are on shift and carry no order",
				"tags": [
					"delivery"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "couriers",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/CourierView"
							}
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "admin only",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/couriers/{id}/availability": {
			"put": {
				"summary": "Go on or off shift",
				"tags": [
					"delivery"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "done"
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"403": {
						"description": "only the partner or an admin",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "unknown courier",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "partner carries an order",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string",
						"format": "uuid",
						"description": "courier id"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/SetCourierAvailabilityRequest"
						}
					}
				]
			}
		},
		"/ws": {
			"get": {
				"summary": "Open the live channel. Messages are order_update and location_update.",
				"tags": [
					"live"
				],
				"parameters": [
					{
						"name": "token",
						"in": "query",
						"type": "string",
						"description": "bearer token for clients that cannot set headers"
					}
				],
				"responses": {
					"101": {
						"description": "switching protocols",
						"schema": {
							"$ref": "#/definitions/LiveMessage"
						}
					},
					"401": {
						"description": "missing or invalid token",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"ErrorResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"CreateOrderRequest": {
			"type": "object",
			"properties": {
				"deliveryAddress": {
					"type": "string"
				},
				"specialInstructions": {
					"type": "string"
				},
				"discount": {
					"type": "string",
					"example": "23.00"
				}
			}
		},
		"CreateOrderResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				}
			}
		},
		"ChangeOrderStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"confirmed",
						"preparing",
						"ready_for_pickup",
						"out_for_delivery",
						"delivered",
						"cancelled"
					]
				},
				"expectedStatus": {
					"type": "string",
					"enum": [
						"pending",
						"confirmed",
						"preparing",
						"ready_for_pickup",
						"out_for_delivery",
						"delivered",
						"cancelled"
					]
				}
			}
		},
		"ReportLocationRequest": {
			"type": "object",
			"properties": {
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				}
			}
		},
		"MarkPaymentRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"completed",
						"failed",
						"refunded"
					]
				}
			}
		},
		"AddToCartRequest": {
			"type": "object",
			"properties": {
				"menuItemId": {
					"type": "string",
					"format": "uuid"
				},
				"quantity": {
					"type": "integer"
				}
			}
		},
		"UpdateCartItemRequest": {
			"type": "object",
			"properties": {
				"quantity": {
					"type": "integer"
				}
			}
		},
		"CreateCourierRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"name": {
					"type": "string"
				},
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				}
			}
		},
		"SetCourierAvailabilityRequest": {
			"type": "object",
			"properties": {
				"available": {
					"type": "boolean"
				}
			}
		},
		"OrderSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"restaurantId": {
					"type": "string",
					"format": "uuid"
				},
				"courierId": {
					"type": "string",
					"format": "uuid"
				},
				"status": {
					"type": "string"
				},
				"total": {
					"type": "string",
					"example": "23.00"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"OrderItemView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"menuItemId": {
					"type": "string",
					"format": "uuid"
				},
				"name": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"unitPrice": {
					"type": "string",
					"example": "23.00"
				},
				"lineTotal": {
					"type": "string",
					"example": "23.00"
				}
			}
		},
		"OrderEventView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"seq": {
					"type": "integer"
				},
				"type": {
					"type": "string"
				},
				"actor": {
					"type": "string"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"payload": {
					"type": "object"
				}
			}
		},
		"RestaurantSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"name": {
					"type": "string"
				},
				"address": {
					"type": "string"
				}
			}
		},
		"OrderSnapshot": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"customerId": {
					"type": "string",
					"format": "uuid"
				},
				"restaurantId": {
					"type": "string",
					"format": "uuid"
				},
				"courierId": {
					"type": "string",
					"format": "uuid"
				},
				"status": {
					"type": "string"
				},
				"paymentStatus": {
					"type": "string"
				},
				"subtotal": {
					"type": "string",
					"example": "23.00"
				},
				"deliveryFee": {
					"type": "string",
					"example": "23.00"
				},
				"discount": {
					"type": "string",
					"example": "23.00"
				},
				"total": {
					"type": "string",
					"example": "23.00"
				},
				"deliveryAddress": {
					"type": "string"
				},
				"specialInstructions": {
					"type": "string"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/OrderItemView"
					}
				},
				"events": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/OrderEventView"
					}
				},
				"restaurant": {
					"$ref": "#/definitions/RestaurantSummary"
				}
			}
		},
		"CartLineView": {
			"type": "object",
			"properties": {
				"menuItemId": {
					"type": "string",
					"format": "uuid"
				},
				"name": {
					"type": "string"
				},
				"unitPrice": {
					"type": "string",
					"example": "23.00"
				},
				"quantity": {
					"type": "integer"
				},
				"lineTotal": {
					"type": "string",
					"example": "23.00"
				}
			}
		},
		"CartView": {
			"type": "object",
			"properties": {
				"customerId": {
					"type": "string",
					"format": "uuid"
				},
				"restaurantId": {
					"type": "string",
					"format": "uuid"
				},
				"lines": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/CartLineView"
					}
				},
				"subtotal": {
					"type": "string",
					"example": "23.00"
				},
				"itemCount": {
					"type": "integer"
				}
			}
		},
		"CourierView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"name": {
					"type": "string"
				},
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				},
				"available": {
					"type": "boolean"
				},
				"activeOrderId": {
					"type": "string",
					"format": "uuid"
				}
			}
		},
		"LiveMessage": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"order_update",
						"location_update"
					]
				},
				"orderId": {
					"type": "string",
					"format": "uuid"
				},
				"seq": {
					"type": "integer",
					"description": "Trail sequence number of the reported event. Drop messages below the last seen one."
				},
				"status": {
					"type": "string"
				},
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds the exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Food ordering API",
	Description:      "Order lifecycle, cart, delivery assignment and the live order channel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
