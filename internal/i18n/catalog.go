package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.internal":               "internal server error",
		"error.bad_request":            "invalid request",
		"error.validation_failed":      "request validation failed",
		"error.not_found":              "resource not found",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "forbidden",
		"error.token_invalid":          "invalid token",
		"error.token_revoked":          "token revoked",
		"error.auth_header_missing":    "authorization header missing",
		"error.auth_header_invalid":    "authorization header invalid",
		"error.jwt_secret_missing":     "jwt secret not configured",
		"error.rate_limit_exceeded":    "too many attempts, try again in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.captcha_invalid":        "captcha verification failed",

		"error.order_not_found":             "order not found",
		"error.order_conflict":              "order was modified by someone else, reload and retry",
		"error.invalid_transition":          "order status change not allowed",
		"error.cancel_not_allowed":          "order can no longer be cancelled",
		"error.refund_not_allowed":          "refund not allowed for this order",
		"error.refund_requires_owner":       "refunds inside 24 hours require owner approval",
		"error.delivery_invalid_transition": "delivery status change not allowed",
		"error.not_delivery_order":          "order is not a delivery order",
		"error.menu_item_not_found":         "menu item not found",
		"error.menu_item_unavailable":       "menu item is unavailable",
		"error.inventory_not_found":         "inventory item not found",
		"error.insufficient_stock":          "insufficient stock",
		"error.customer_exists":             "customer already registered",
		"error.invalid_credentials":         "invalid email or password",
		"error.issue_not_found":             "issue not found",
		"error.staff_not_found":             "staff member not found",
		"error.staff_exists":                "staff member already exists",
		"error.staff_disabled":              "staff account disabled",
		"error.setting_not_found":           "setting not found",
		"error.driver_not_found":            "driver not found",
		"error.inventory_sku_taken":         "inventory sku already in use",
		"error.issue_closed_order":          "issues cannot be reported on completed or cancelled orders",
		"error.password_too_weak":           "password does not meet the security policy",
		"error.id_invalid":                  "invalid id",
		"error.staff_id_invalid":            "invalid staff id",
		"error.staff_id_type_invalid":       "staff id has unexpected type",
		"error.customer_id_invalid":         "invalid customer id",
		"error.customer_id_type_invalid":    "customer id has unexpected type",
		"error.export_failed":               "export failed",
		"error.date_range_invalid":          "invalid date range",
		"error.order_already_paid":          "order is already paid",
		"error.payment_disabled":            "online payment is not available",
		"error.refund_not_pending":          "order has no pending refund",

		"warn.status_updated_email_failed": "status updated, but the notification email could not be sent",

		"status.pending":          "Pending",
		"status.confirmed":        "Confirmed",
		"status.in_progress":      "In Progress",
		"status.ready":            "Ready",
		"status.out_for_delivery": "Out for Delivery",
		"status.delivered":        "Delivered",
		"status.completed":        "Completed",
		"status.cancelled":        "Cancelled",

		"delivery.pending":    "Awaiting Driver",
		"delivery.assigned":   "Driver Assigned",
		"delivery.in_transit": "In Transit",
		"delivery.delivered":  "Delivered",
		"delivery.failed":     "Delivery Failed",

		"email.order_status.subject":        "Order %s is now %s",
		"email.order_status.body":           "Hello %s,\n\nYour order %s is now %s.\n\nTotal: %s %s\n\nThank you for choosing us.",
		"email.order_status.body_ready":     "Hello %s,\n\nGood news! Your order %s is ready for pickup on %s at %s.\n\nSee you soon.",
		"email.order_status.body_delivery":  "Hello %s,\n\nYour order %s is out for delivery and should arrive soon.",
		"email.order_status.body_cancelled": "Hello %s,\n\nYour order %s has been cancelled.\nRefund: %s %s.\n\nWe hope to see you again.",
		"email.order_confirmation.subject":  "Order %s received",
		"email.order_confirmation.body":     "Hello %s,\n\nWe received your order %s.\nTotal: %s %s\nNeeded by: %s\n\nWe will confirm it shortly.",
		"email.low_stock.subject":           "Low stock: %s",
		"email.low_stock.body":              "Inventory item %s dropped to %s %s, below the reorder threshold of %s.",
		"email.daily_digest.subject":        "Daily summary for %s",
		"email.daily_digest.body":           "Summary for %s:\n\nOrders placed: %d\nRevenue: %s %s\nCancellations: %d",
	},
	LocaleES: {
		"error.internal":               "error interno del servidor",
		"error.bad_request":            "solicitud inválida",
		"error.validation_failed":      "la validación de la solicitud falló",
		"error.not_found":              "recurso no encontrado",
		"error.unauthorized":           "no autorizado",
		"error.forbidden":              "prohibido",
		"error.token_invalid":          "token inválido",
		"error.token_revoked":          "token revocado",
		"error.auth_header_missing":    "falta el encabezado de autorización",
		"error.auth_header_invalid":    "encabezado de autorización inválido",
		"error.jwt_secret_missing":     "secreto jwt no configurado",
		"error.rate_limit_exceeded":    "demasiados intentos, intenta de nuevo en %d segundos",
		"error.rate_limit_unavailable": "limitador de solicitudes no disponible",
		"error.captcha_invalid":        "la verificación del captcha falló",

		"error.order_not_found":             "pedido no encontrado",
		"error.order_conflict":              "el pedido fue modificado por otra persona, recargue e intente de nuevo",
		"error.invalid_transition":          "cambio de estado del pedido no permitido",
		"error.cancel_not_allowed":          "el pedido ya no se puede cancelar",
		"error.refund_not_allowed":          "reembolso no permitido para este pedido",
		"error.refund_requires_owner":       "los reembolsos dentro de 24 horas requieren aprobación del propietario",
		"error.delivery_invalid_transition": "cambio de estado de entrega no permitido",
		"error.not_delivery_order":          "el pedido no es de entrega a domicilio",
		"error.menu_item_not_found":         "producto no encontrado",
		"error.menu_item_unavailable":       "producto no disponible",
		"error.inventory_not_found":         "insumo no encontrado",
		"error.insufficient_stock":          "existencias insuficientes",
		"error.customer_exists":             "el cliente ya está registrado",
		"error.invalid_credentials":         "correo o contraseña inválidos",
		"error.issue_not_found":             "incidencia no encontrada",
		"error.staff_not_found":             "empleado no encontrado",
		"error.staff_exists":                "el empleado ya existe",
		"error.staff_disabled":              "cuenta de empleado deshabilitada",
		"error.setting_not_found":           "configuración no encontrada",
		"error.driver_not_found":            "repartidor no encontrado",
		"error.inventory_sku_taken":         "el sku de insumo ya está en uso",
		"error.issue_closed_order":          "no se pueden reportar incidencias en pedidos completados o cancelados",
		"error.password_too_weak":           "la contraseña no cumple la política de seguridad",
		"error.id_invalid":                  "id inválido",
		"error.staff_id_invalid":            "id de empleado inválido",
		"error.staff_id_type_invalid":       "el id de empleado tiene un tipo inesperado",
		"error.customer_id_invalid":         "id de cliente inválido",
		"error.customer_id_type_invalid":    "el id de cliente tiene un tipo inesperado",
		"error.export_failed":               "la exportación falló",
		"error.date_range_invalid":          "rango de fechas inválido",
		"error.order_already_paid":          "el pedido ya está pagado",
		"error.payment_disabled":            "el pago en línea no está disponible",
		"error.refund_not_pending":          "el pedido no tiene reembolso pendiente",

		"warn.status_updated_email_failed": "estado actualizado, pero no se pudo enviar el correo de notificación",

		"status.pending":          "Pendiente",
		"status.confirmed":        "Confirmado",
		"status.in_progress":      "En Preparación",
		"status.ready":            "Listo",
		"status.out_for_delivery": "En Reparto",
		"status.delivered":        "Entregado",
		"status.completed":        "Completado",
		"status.cancelled":        "Cancelado",

		"delivery.pending":    "Esperando Repartidor",
		"delivery.assigned":   "Repartidor Asignado",
		"delivery.in_transit": "En Camino",
		"delivery.delivered":  "Entregado",
		"delivery.failed":     "Entrega Fallida",

		"email.order_status.subject":        "El pedido %s ahora está %s",
		"email.order_status.body":           "Hola %s,\n\nSu pedido %s ahora está %s.\n\nTotal: %s %s\n\nGracias por su preferencia.",
		"email.order_status.body_ready":     "Hola %s,\n\n¡Buenas noticias! Su pedido %s está listo para recoger el %s a las %s.\n\nHasta pronto.",
		"email.order_status.body_delivery":  "Hola %s,\n\nSu pedido %s va en camino y llegará pronto.",
		"email.order_status.body_cancelled": "Hola %s,\n\nSu pedido %s ha sido cancelado.\nReembolso: %s %s.\n\nEsperamos verle de nuevo.",
		"email.order_confirmation.subject":  "Pedido %s recibido",
		"email.order_confirmation.body":     "Hola %s,\n\nRecibimos su pedido %s.\nTotal: %s %s\nFecha de entrega: %s\n\nLo confirmaremos en breve.",
		"email.low_stock.subject":           "Existencias bajas: %s",
		"email.low_stock.body":              "El insumo %s bajó a %s %s, por debajo del umbral de reposición de %s.",
		"email.daily_digest.subject":        "Resumen diario del %s",
		"email.daily_digest.body":           "Resumen del %s:\n\nPedidos recibidos: %d\nIngresos: %s %s\nCancelaciones: %d",
	},
}
