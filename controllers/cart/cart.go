package cartController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	cartValidator "lms/validators/cart"
)

func GetCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []models.CartItem
	if err := database.Database.Db.Where("user_id = ?", userID).
		Preload("Course").Order("created_at desc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
	}

	var total float64
	for _, item := range items {
		total += item.Course.Price
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", fiber.Map{
		"items":       items,
		"total_items": len(items),
		"total_price": total,
	})
}

func AddToCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCartItem").(*cartValidator.AddToCartRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Course must exist and be purchasable
	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.CourseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Already enrolled users have nothing to buy
	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&enrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	var existingItem models.CartItem
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&existingItem).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in the cart!", nil)
	}

	item := models.CartItem{
		UserID:   userID,
		CourseID: reqData.CourseID,
	}
	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course to cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to cart!", item)
}

func RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	result := database.Database.Db.Unscoped().
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course from cart!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course is not in the cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart!", nil)
}

// Checkout turns the cart into an order: the user is enrolled in every course
// in the cart and the cart is emptied.
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var items []models.CartItem
	if err := database.Database.Db.Where("user_id = ?", userID).Preload("Course").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
	}
	if len(items) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cart is empty!", nil)
	}

	order := models.Order{
		UserID:   userID,
		OrderRef: uuid.NewString(),
	}
	for _, item := range items {
		order.TotalAmount += item.Course.Price
		order.Items = append(order.Items, models.OrderItem{
			CourseID: item.CourseID,
			Price:    item.Course.Price,
		})
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to place order!", nil)
	}

	for _, item := range items {
		// Skip courses the user got enrolled in since adding to cart
		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, item.CourseID, false).First(&existing).Error; err == nil {
			continue
		}

		enrollment := models.Enrollment{UserID: userID, CourseID: item.CourseID}
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		if err := tx.Model(&models.Course{}).Where("id = ?", item.CourseID).
			Update("students", item.Course.Students+1).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear cart!", nil)
	}
	tx.Commit()

	go utils.SendOrderEmail(user.Name, order.OrderRef, order.TotalAmount, user.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout completed successfully!", order)
}
