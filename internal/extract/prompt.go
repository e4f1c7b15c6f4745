package extract

import "fmt"

// systemPrompt fixes the extraction contract: output shape, category hints
// and the currency unit. Categories are hints for the model only; the
// validator accepts any non-empty category text.
const systemPrompt = `Ты помощник для интернет-магазина. Твоя задача - извлечь информацию о товаре из сообщения пользователя и вернуть структурированные данные в формате JSON.

Требования:
1. Исправь орфографические ошибки
2. Извлеки: название товара, категорию, цену, описание
3. Если цена не указана, поставь 0
4. Цена должна быть в кыргызских сомах
5. Категории должны быть на русском: Электроника, Одежда, Дом и сад, Спорт, Книги, Автомобили, Красота, Игрушки
6. Верни только JSON в формате:
{
  "title": "Название товара",
  "category": "Категория",
  "price": числовое_значение_в_кыргызских_сомах,
  "description": "Краткое описание"
}`

func userPrompt(text string, withImage bool) string {
	if withImage {
		return fmt.Sprintf("Описание товара: %s\n\nПроанализируй также изображение и дополни информацию о товаре.", text)
	}
	return fmt.Sprintf("Описание товара: %s", text)
}
