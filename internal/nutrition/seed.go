package nutrition

import "github.com/fdg312/health-assistant/internal/storage"

func food(name string, cal, protein, carbs, fats, fiber float64) storage.FoodProfile {
	return storage.FoodProfile{
		Name:      name,
		Nutrients: storage.Nutrients{Calories: cal, Protein: protein, Carbs: carbs, Fats: fats, Fiber: fiber},
	}
}

// SeedFoods — стартовый справочник (на 100 г), загружается в пустую таблицу
var SeedFoods = []storage.FoodProfile{
	food("chicken breast", 165, 31, 0, 3.6, 0),
	food("brown rice", 112, 2.6, 24, 0.9, 1.8),
	food("white rice", 130, 2.7, 28, 0.3, 0.4),
	food("broccoli", 34, 2.8, 7, 0.4, 2.6),
	food("banana", 89, 1.1, 23, 0.3, 2.6),
	food("apple", 52, 0.3, 14, 0.2, 2.4),
	food("salmon", 208, 20, 0, 13, 0),
	food("eggs", 155, 13, 1.1, 11, 0),
	food("oatmeal", 389, 17, 66, 7, 11),
	food("almonds", 579, 21, 22, 50, 12.5),
	food("sweet potato", 86, 1.6, 20, 0.1, 3),
	food("spinach", 23, 2.9, 3.6, 0.4, 2.2),
	food("greek yogurt", 59, 10, 3.6, 0.4, 0),
	food("avocado", 160, 2, 9, 15, 7),
	food("pasta", 131, 5, 25, 1.1, 1.8),
	food("beef", 250, 26, 0, 15, 0),

	// indian
	food("roti", 297, 11, 45, 9, 4),
	food("dal", 116, 9, 20, 0.4, 8),
	food("paneer", 265, 18, 1.2, 20, 0),
	food("chapati", 120, 3.1, 18, 3.7, 2),
	food("idli", 58, 2, 12, 0.1, 0.3),
	food("dosa", 168, 4, 25, 6, 2),
	food("curd", 60, 3.5, 4.7, 3.3, 0),
	food("samosa", 252, 3.5, 23, 17, 2),

	// everyday snacks used by routines
	food("bread", 265, 9, 49, 3.2, 2.7),
	food("jam", 278, 0.4, 69, 0.1, 1),
	food("poha", 110, 2, 23, 0.4, 2),
	food("paratha", 320, 6, 40, 15, 3),
	food("maggie", 400, 8, 60, 14, 2),
	food("chowmein", 138, 4.5, 20, 4.5, 2),
	food("fried rice", 130, 3, 20, 4, 1),
	food("chana", 164, 9, 27, 3, 8),
	food("ganne ka juice", 50, 0.2, 13, 0, 0),
	food("pakora", 180, 3.5, 18, 11, 2),
	food("cashews", 553, 18, 30, 44, 3.3),
}
