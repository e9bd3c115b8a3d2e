package handlers

import "fmt"

func startText(firstName string) string {
	return fmt.Sprintf(`🎓 Добро пожаловать в AW_ZEO, %s!

🤖 Ваш умный помощник в КРУ им. А. Байтурсынова

✨ Что умеет AW_ZEO:
• 📅 Расписание пар - актуальное расписание для вашей группы
• 🎓 Доступ к Moodle - логины и пароли для системы обучения
• 🧩 Профориентация - тест Климова для выбора профессии
• 🎯 Поступление - вся информация для абитуриентов
• 🤖 AI помощник - ответы на любые вопросы

📱 Для начала работы предоставьте ваш номер телефона.`, firstName)
}

const helpText = `📖 Помощь по AW_ZEO

Основные команды:
/start - главное меню
/app - открыть Web приложение
/schedule - информация о расписании
/moodle - доступ к системе Moodle
/admission - информация о поступлении
/help - эта справка

Как получить данные Moodle:
1. Нажмите /start и предоставьте номер телефона
2. Отправьте боту ваше ФИО или ИИН
3. Получите логин и пароль

Расписание прямо в чате: «расписание ИС-21-101-01 завтра».

Поддержка:
При технических проблемах обращайтесь в поддержку университета.`

const moodleInfoText = `🎓 Доступ к системе Moodle

Для получения ваших учетных данных:
1. Предоставьте номер телефона (если еще не сделали)
2. Отправьте боту ваше ФИО или ИИН
3. Получите логин и пароль

Важно:
• Логин и пароль индивидуальны для каждого студента
• После первого входа рекомендуется сменить пароль
• При проблемах обращайтесь в техническую поддержку`

const scheduleInfoText = `📅 Расписание занятий

В приложении AW_ZEO вы можете:
• Просматривать расписание для вашей группы
• Видеть пары на сегодня, завтра или любую дату

Как посмотреть расписание:
1. Откройте приложение AW_ZEO
2. Перейдите в раздел "Расписание"
3. Выберите вашу группу
4. Выберите нужную дату

Или напишите боту: «расписание ИС-21-101-01 на завтра».`

const admissionInfoText = `🎯 Поступление в КРУ

Для абитуриентов доступно:
• 🧩 Тест Климова - профориентация и выбор профессии
• 📊 Образовательные программы - полный список специальностей
• 🎓 Проходные баллы - информация по конкурсу

Как воспользоваться:
1. Откройте приложение AW_ZEO
2. Перейдите в раздел "Поступление"
3. Выберите нужную вкладку

🎓 Уровни образования:
• Бакалавриат
• Магистратура
• Докторантура`

func appText(url string) string {
	if url == "" {
		return "🚀 Веб-приложение AW_ZEO пока не подключено. Воспользуйтесь командами /schedule, /moodle, /admission."
	}
	return fmt.Sprintf(`🚀 Открытие AW_ZEO приложения

🌐 Ссылка для доступа:
%s

📱 Доступные разделы:
• Главная - быстрый доступ ко всем функциям
• Расписание - ваше актуальное расписание пар
• Moodle - учетные данные для входа
• Поступление - информация для абитуриентов`, url)
}

const supportText = "📞 Техническая поддержка\n\nТелефон: +7 (7142) 51-11-57\nEmail: support@kru.edu.kz"

const scheduleHintText = `📅 Для просмотра расписания:

1. Откройте приложение AW_ZEO
2. Перейдите в раздел "Расписание"
3. Выберите вашу группу
4. Выберите нужный день

Или укажите группу в сообщении: «расписание ИС-21-101-01 завтра».`

const credentialsNotFoundText = `❌ Не удалось найти ваши данные.

Возможные причины:
• Проверьте правильность ФИО или ИИН
• Убедитесь, что вы учитесь в КРУ
• Обратитесь в техническую поддержку

Попробуйте отправить:
• Ваше полное ФИО (как в документах)
• Или ваш ИИН`

const noLessonsText = "📅 На выбранную дату пар нет 🎉"
