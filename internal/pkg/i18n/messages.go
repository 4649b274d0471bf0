package i18n

// Onboarding
const (
	Welcome               Key = "welcome"
	ChooseLanguage        Key = "choose_language"
	ContactRequest        Key = "contact_request"
	ContactButton         Key = "contact_button"
	ContactRequired       Key = "contact_required"
	ContactAccepted       Key = "contact_accepted"
	FullNameInvalid       Key = "full_name_invalid"
	TextRequired          Key = "text_required"
	FullNameAccepted      Key = "full_name_accepted"
	BirthDateInvalid      Key = "birth_date_invalid"
	SubscribePrompt       Key = "subscribe_prompt"
	SubscribeButton       Key = "subscribe_button"
	CheckSubscription     Key = "check_subscription_button"
	CheckingSubscription  Key = "checking_subscription"
	NotSubscribed         Key = "not_subscribed"
	SubscribeFirst        Key = "subscribe_first"
	RegistrationComplete  Key = "registration_complete"
	GenericError          Key = "generic_error"
	WelcomeBack           Key = "welcome_back"
	MainMenuPrompt        Key = "main_menu_prompt"
	UnknownCommand        Key = "unknown_command"
	SupportTicketAccepted Key = "support_ticket_accepted"
)

// Main menu
const (
	MenuShop     Key = "menu_shop"
	MenuProfile  Key = "menu_profile"
	MenuFeedback Key = "menu_feedback"
	MenuSurvey   Key = "menu_survey"
	MenuHelp     Key = "menu_help"

	ShopPrompt Key = "shop_prompt"
	ShopButton Key = "shop_button"
	Feedback   Key = "feedback"
	Survey     Key = "survey"
	Help       Key = "help"
	MyID       Key = "my_id"
)

var menuKeys = []Key{MenuShop, MenuProfile, MenuFeedback, MenuSurvey, MenuHelp}

// Profile
const (
	Profile            Key = "profile"
	ProfileVouchers    Key = "profile_vouchers"
	ProfileNoVouchers  Key = "profile_no_vouchers"
	ProfileVoucherLine Key = "profile_voucher_line"
	VoucherBirthday    Key = "voucher_birthday"
	VoucherAnniversary Key = "voucher_anniversary"
	VoucherSpecial     Key = "voucher_special"
	DaysLeft           Key = "days_left"
	ExpiresToday       Key = "expires_today"
	NotProvided        Key = "not_provided"
)

// Customer notifications
const (
	CashbackEarned   Key = "cashback_earned"
	BirthdayReminder Key = "birthday_reminder"
	BirthdayVoucher  Key = "birthday_voucher"
	AnniversaryGift  Key = "anniversary_gift"
	VoucherReminder  Key = "voucher_reminder"
)

// Operator texts
const (
	NoAdminRights          Key = "no_admin_rights"
	AdminPanel             Key = "admin_panel"
	AdminPanelLink         Key = "admin_panel_link"
	SweepDone              Key = "sweep_done"
	SweepFailed            Key = "sweep_failed"
	BroadcastUsage         Key = "broadcast_usage"
	BroadcastSending       Key = "broadcast_sending"
	BroadcastResult        Key = "broadcast_result"
	BroadcastConfirm       Key = "broadcast_confirm"
	BroadcastYes           Key = "broadcast_yes"
	BroadcastNo            Key = "broadcast_no"
	BroadcastCancelled     Key = "broadcast_cancelled"
	BroadcastNothing       Key = "broadcast_nothing_pending"
	SendUserUsage          Key = "send_user_usage"
	SendUserDone           Key = "send_user_done"
	SendUserFailed         Key = "send_user_failed"
	AdminSupportTicket     Key = "admin_support_ticket"
	AdminHelpRequested     Key = "admin_help_requested"
	AdminFollowup          Key = "admin_followup"
	AdminAnniversary       Key = "admin_anniversary"
	AdminAnniversaryLine   Key = "admin_anniversary_line"
	AdminBirthdayVoucher   Key = "admin_birthday_voucher"
	AdminNewRegistration   Key = "admin_new_registration"
	AdminTestNotification  Key = "admin_test_notification"
	AdminTestNotifySummary Key = "admin_test_notify_summary"
)

func same(s string) [3]string { return [3]string{s, s, s} }

// texts are ordered uz, uz_cyrl, ru.
var texts = map[Key][3]string{
	Welcome: same("🎉 %s botiga xush kelibsiz!\n\nIltimos, tilni tanlang / Пожалуйста, выберите язык / Илтимос, тилни танланг:"),
	ChooseLanguage: {
		"Iltimos, tilni tanlang:",
		"Илтимос, тилни танланг:",
		"Пожалуйста, выберите язык:",
	},
	ContactRequest: {
		"✅ Til tanlandi: O'zbek (lotin)\n\nRo'yxatdan o'tish uchun telefon raqamingizni yuboring.",
		"✅ Тил танланди: Ўзбек (кирил)\n\nРўйхатдан ўтиш учун телефон рақамингизни юборинг.",
		"✅ Выбран язык: Русский\n\nДля регистрации отправьте свой номер телефона.",
	},
	ContactButton: {
		"📱 Telefon raqamni yuborish",
		"📱 Телефон рақамни юбориш",
		"📱 Отправить номер телефона",
	},
	ContactRequired: {
		"❌ Iltimos, quyidagi tugma orqali telefon raqamingizni yuboring.",
		"❌ Илтимос, қуйидаги тугма орқали телефон рақамингизни юборинг.",
		"❌ Пожалуйста, отправьте свой номер телефона с помощью кнопки ниже.",
	},
	ContactAccepted: {
		"✅ Telefon raqam qabul qilindi!\n\nEndi ism va familiyangizni kiriting (masalan: Aziz Karimov):",
		"✅ Телефон рақам қабул қилинди!\n\nЭнди исм ва фамилиянгизни киритинг (масалан: Азиз Каримов):",
		"✅ Номер телефона принят!\n\nТеперь введите имя и фамилию (например: Азиз Каримов):",
	},
	FullNameInvalid: {
		"❌ Iltimos, ism va familiyangizni to'liq kiriting (masalan: Aziz Karimov).",
		"❌ Илтимос, исм ва фамилиянгизни тўлиқ киритинг (масалан: Азиз Каримов).",
		"❌ Пожалуйста, введите имя и фамилию полностью (например: Азиз Каримов).",
	},
	TextRequired: {
		"❌ Iltimos, matn ko'rinishida yuboring.",
		"❌ Илтимос, матн кўринишида юборинг.",
		"❌ Пожалуйста, отправьте текстом.",
	},
	FullNameAccepted: {
		"✅ Ism familiya qabul qilindi!\n\nTug'ilgan kuningizni kiriting (format: kk.oo.yyyy, masalan: 15.03.1995):",
		"✅ Исм фамилия қабул қилинди!\n\nТуғилган кунингизни киритинг (формат: кк.оо.йййй, масалан: 15.03.1995):",
		"✅ Имя и фамилия приняты!\n\nВведите дату рождения (формат: дд.мм.гггг, например: 15.03.1995):",
	},
	BirthDateInvalid: {
		"❌ Noto'g'ri format. Iltimos, tug'ilgan kuningizni kk.oo.yyyy formatida kiriting (masalan: 15.03.1995).",
		"❌ Нотўғри формат. Илтимос, туғилган кунингизни кк.оо.йййй форматида киритинг (масалан: 15.03.1995).",
		"❌ Неверный формат. Пожалуйста, введите дату рождения в формате дд.мм.гггг (например: 15.03.1995).",
	},
	SubscribePrompt: {
		"✅ Ma'lumotlar saqlandi!\n\nRo'yxatdan o'tishni yakunlash uchun %s kanaliga obuna bo'ling va \"Obunani tekshirish\" tugmasini bosing.",
		"✅ Маълумотлар сақланди!\n\nРўйхатдан ўтишни якунлаш учун %s каналига обуна бўлинг ва \"Обунани текшириш\" тугмасини босинг.",
		"✅ Данные сохранены!\n\nЧтобы завершить регистрацию, подпишитесь на канал %s и нажмите \"Проверить подписку\".",
	},
	SubscribeButton: {
		"📢 Kanalga obuna bo'lish",
		"📢 Каналга обуна бўлиш",
		"📢 Подписаться на канал",
	},
	CheckSubscription: {
		"✅ Obunani tekshirish",
		"✅ Обунани текшириш",
		"✅ Проверить подписку",
	},
	CheckingSubscription: {
		"⏳ Obuna tekshirilmoqda...",
		"⏳ Обуна текширилмоқда...",
		"⏳ Проверяем подписку...",
	},
	NotSubscribed: {
		"❌ Siz hali kanalga obuna bo'lmagansiz. Iltimos, obuna bo'ling va qaytadan tekshiring.",
		"❌ Сиз ҳали каналга обуна бўлмагансиз. Илтимос, обуна бўлинг ва қайтадан текширинг.",
		"❌ Вы ещё не подписаны на канал. Пожалуйста, подпишитесь и проверьте снова.",
	},
	SubscribeFirst: {
		"⏳ Iltimos, kanalga obuna bo'ling va \"Obunani tekshirish\" tugmasini bosing.",
		"⏳ Илтимос, каналга обуна бўлинг ва \"Обунани текшириш\" тугмасини босинг.",
		"⏳ Пожалуйста, подпишитесь на канал и нажмите \"Проверить подписку\".",
	},
	RegistrationComplete: {
		"🎉 Tabriklaymiz, %s! Ro'yxatdan muvaffaqiyatli o'tdingiz!\n\n🎁 Sizning kupon kodingiz: %s\n💰 Chegirma: %d so'm\n📅 Amal qilish muddati: %d kun\n\nKuponni do'konimizda ko'rsating.",
		"🎉 Табриклаймиз, %s! Рўйхатдан муваффақиятли ўтдингиз!\n\n🎁 Сизнинг купон кодингиз: %s\n💰 Чегирма: %d сўм\n📅 Амал қилиш муддати: %d кун\n\nКупонни дўконимизда кўрсатинг.",
		"🎉 Поздравляем, %s! Вы успешно зарегистрировались!\n\n🎁 Ваш код купона: %s\n💰 Скидка: %d сум\n📅 Срок действия: %d дн.\n\nПокажите купон в нашем магазине.",
	},
	GenericError: {
		"❌ Xatolik yuz berdi. Iltimos, keyinroq qayta urinib ko'ring.",
		"❌ Хатолик юз берди. Илтимос, кейинроқ қайта уриниб кўринг.",
		"❌ Произошла ошибка. Пожалуйста, попробуйте позже.",
	},
	WelcomeBack: {
		"👋 Salom, %s! Qaytganingizdan xursandmiz.",
		"👋 Салом, %s! Қайтганингиздан хурсандмиз.",
		"👋 Здравствуйте, %s! Рады вас видеть снова.",
	},
	MainMenuPrompt: {
		"Quyidagi menyudan tanlang:",
		"Қуйидаги менюдан танланг:",
		"Выберите пункт меню:",
	},
	UnknownCommand: {
		"❓ Noma'lum buyruq. Menyudan foydalaning.",
		"❓ Номаълум буйруқ. Менюдан фойдаланинг.",
		"❓ Неизвестная команда. Воспользуйтесь меню.",
	},
	SupportTicketAccepted: {
		"✅ Xabaringiz adminga yuborildi. Tez orada javob beramiz!",
		"✅ Хабарингиз админга юборилди. Тез орада жавоб берамиз!",
		"✅ Ваше сообщение отправлено администратору. Скоро ответим!",
	},

	MenuShop:     {"🛒 Do'kon", "🛒 Дўкон", "🛒 Магазин"},
	MenuProfile:  {"👤 Profil", "👤 Профил", "👤 Профиль"},
	MenuFeedback: {"⭐ Fikr qoldirish", "⭐ Фикр қолдириш", "⭐ Оставить отзыв"},
	MenuSurvey:   {"📝 So'rovnoma", "📝 Сўровнома", "📝 Опрос"},
	MenuHelp:     {"🆘 Yordam", "🆘 Ёрдам", "🆘 Помощь"},

	ShopPrompt: {
		"🛒 Do'konimizni ochish uchun quyidagi tugmani bosing:",
		"🛒 Дўконимизни очиш учун қуйидаги тугмани босинг:",
		"🛒 Нажмите кнопку ниже, чтобы открыть магазин:",
	},
	ShopButton: {
		"🛒 %s ni ochish",
		"🛒 %s ни очиш",
		"🛒 Открыть %s",
	},
	Feedback: {
		"⭐ Fikringiz biz uchun muhim! Sharh qoldiring:\n%s",
		"⭐ Фикрингиз биз учун муҳим! Шарҳ қолдиринг:\n%s",
		"⭐ Ваше мнение важно для нас! Оставьте отзыв:\n%s",
	},
	Survey: {
		"📝 Qisqa so'rovnomada ishtirok eting:\n%s",
		"📝 Қисқа сўровномада иштирок этинг:\n%s",
		"📝 Примите участие в коротком опросе:\n%s",
	},
	Help: {
		"🆘 Yordam kerakmi? Adminlarimizga xabar berdik, tez orada siz bilan bog'lanishadi.\n\nAloqa: %s",
		"🆘 Ёрдам керакми? Админларимизга хабар бердик, тез орада сиз билан боғланишади.\n\nАлоқа: %s",
		"🆘 Нужна помощь? Мы сообщили администраторам, скоро с вами свяжутся.\n\nКонтакт: %s",
	},
	MyID: same("🆔 Sizning Telegram ID: %s"),

	Profile: {
		"👤 Profil\n\n📝 Ism: %s\n📱 Telefon: %s\n🎂 Tug'ilgan kun: %s\n💰 Keshbek balansi: %d so'm",
		"👤 Профил\n\n📝 Исм: %s\n📱 Телефон: %s\n🎂 Туғилган кун: %s\n💰 Кешбек баланси: %d сўм",
		"👤 Профиль\n\n📝 Имя: %s\n📱 Телефон: %s\n🎂 Дата рождения: %s\n💰 Баланс кешбэка: %d сум",
	},
	ProfileVouchers: {
		"\n\n🎁 Faol kuponlar:",
		"\n\n🎁 Фаол купонлар:",
		"\n\n🎁 Активные купоны:",
	},
	ProfileNoVouchers: {
		"\n\n🎁 Faol kuponlar yo'q.",
		"\n\n🎁 Фаол купонлар йўқ.",
		"\n\n🎁 Активных купонов нет.",
	},
	ProfileVoucherLine: same("\n%s: %s (%d) %s"),
	VoucherBirthday:    {"🎂 Tug'ilgan kun", "🎂 Туғилган кун", "🎂 День рождения"},
	VoucherAnniversary: {"🎉 Yubiley", "🎉 Юбилей", "🎉 Юбилей"},
	VoucherSpecial:     {"⭐ Maxsus", "⭐ Махсус", "⭐ Специальный"},
	DaysLeft:           {"⏳ %d kun qoldi", "⏳ %d кун қолди", "⏳ осталось %d дн."},
	ExpiresToday:       {"⏳ bugun tugaydi", "⏳ бугун тугайди", "⏳ истекает сегодня"},
	NotProvided:        {"Kiritilmagan", "Киритилмаган", "Не указано"},

	CashbackEarned: {
		"🎉 Tabriklaymiz! Xaridingiz uchun keshbek berildi.\n\n🛍 Xarid summasi: %d so'm\n💰 Berilgan keshbek: %d so'm\n💳 Jami yig'ilgan keshbek: %d so'm",
		"🎉 Табриклаймиз! Харидингиз учун кешбек берилди.\n\n🛍 Харид суммаси: %d сўм\n💰 Берилган кешбек: %d сўм\n💳 Жами йиғилган кешбек: %d сўм",
		"🎉 Поздравляем! За покупку начислен кешбэк.\n\n🛍 Сумма покупки: %d сум\n💰 Начислено кешбэка: %d сум\n💳 Всего накоплено: %d сум",
	},
	BirthdayReminder: {
		"🎂 Hurmatli %s! Ertaga tug'ilgan kuningiz! Sizni oldindan tabriklaymiz va ertaga maxsus sovg'a kuponi yuboramiz 🎁",
		"🎂 Ҳурматли %s! Эртага туғилган кунингиз! Сизни олдиндан табриклаймиз ва эртага махсус совға купони юборамиз 🎁",
		"🎂 Уважаемый(ая) %s! Завтра ваш день рождения! Заранее поздравляем, завтра пришлём подарочный купон 🎁",
	},
	BirthdayVoucher: {
		"🎉 Tug'ilgan kuningiz bilan, %s!\n\n🎁 Sovg'a kuponingiz: %s\n💰 Chegirma: %d so'm\n📅 Amal qilish muddati: %d kun",
		"🎉 Туғилган кунингиз билан, %s!\n\n🎁 Совға купонингиз: %s\n💰 Чегирма: %d сўм\n📅 Амал қилиш муддати: %d кун",
		"🎉 С днём рождения, %s!\n\n🎁 Ваш подарочный купон: %s\n💰 Скидка: %d сум\n📅 Срок действия: %d дн.",
	},
	AnniversaryGift: {
		"🎉 Biz bilan %d oy birga bo'lganingiz uchun rahmat!\n\n🎁 Sovg'a kuponingiz: %s\n💰 Chegirma: %d so'm\n📅 Amal qilish muddati: %d kun",
		"🎉 Биз билан %d ой бирга бўлганингиз учун раҳмат!\n\n🎁 Совға купонингиз: %s\n💰 Чегирма: %d сўм\n📅 Амал қилиш муддати: %d кун",
		"🎉 Спасибо, что вы с нами уже %d мес.!\n\n🎁 Ваш подарочный купон: %s\n💰 Скидка: %d сум\n📅 Срок действия: %d дн.",
	},
	VoucherReminder: {
		"⚠️ Eslatma: %s kuponingiz (%d so'm) muddati tugashiga %d kun qoldi! Do'konimizga tashrif buyuring.",
		"⚠️ Эслатма: %s купонингиз (%d сўм) муддати тугашига %d кун қолди! Дўконимизга ташриф буюринг.",
		"⚠️ Напоминание: до окончания срока купона %s (%d сум) осталось %d дн.! Ждём вас в магазине.",
	},

	NoAdminRights:          same("❌ Sizda admin huquqlari yo'q."),
	AdminPanel:             same("🛠 Admin panel\n\n👥 Ro'yxatdan o'tganlar: %d\n🆕 Jarayonda: %d\n🎁 Faol kuponlar: %d\n✅ Ishlatilgan: %d\n⌛ Muddati o'tgan: %d"),
	AdminPanelLink:         same("\n\n🔗 %s"),
	SweepDone:              same("✅ Test bajarildi: %s"),
	SweepFailed:            same("❌ Test bajarilmadi: %s"),
	BroadcastUsage:         same("ℹ️ Foydalanish: /broadcast <xabar matni>"),
	BroadcastSending:       same("📤 Xabar ro'yxatdan o'tgan foydalanuvchilarga yuborilmoqda..."),
	BroadcastResult:        same("📊 Yuborish natijasi:\n\n👥 Jami: %d\n✅ Muvaffaqiyatli: %d\n❌ Xato: %d\n📈 Muvaffaqiyat: %.1f%%"),
	BroadcastConfirm:       same("📢 Bu postni barcha ro'yxatdan o'tgan foydalanuvchilarga yuborasizmi?"),
	BroadcastYes:           same("✅ Ha"),
	BroadcastNo:            same("❌ Yo'q"),
	BroadcastCancelled:     same("❌ Yuborish bekor qilindi."),
	BroadcastNothing:       same("ℹ️ Yuborish uchun kutilayotgan post yo'q."),
	SendUserUsage:          same("ℹ️ Foydalanish: /senduser <telegram_id> <xabar matni>"),
	SendUserDone:           same("✅ Xabar yuborildi."),
	SendUserFailed:         same("❌ Xabar yuborilmadi."),
	AdminSupportTicket:     same("📩 Yangi xabar\n\n👤 %s (@%s)\n🆔 %s\n📱 %s\n\n💬 %s"),
	AdminHelpRequested:     same("🆘 Yordam so'raldi\n\n👤 %s (@%s)\n🆔 %s\n📱 %s"),
	AdminFollowup:          same("📞 Ro'yxatdan o'tganiga %d kun bo'ldi\n\n👤 %s (@%s)\n🆔 %s\n📱 %s\n\nMijoz bilan bog'laning."),
	AdminAnniversary:       same("🎉 %d oylik yubiley (%d ta mijoz):"),
	AdminAnniversaryLine:   same("\n👤 %s, 📱 %s, 🆔 %s"),
	AdminBirthdayVoucher:   same("🎂 Tug'ilgan kun kuponi yaratildi\n\n👤 %s\n📱 %s\n🎁 %s (%d so'm)"),
	AdminNewRegistration:   same("🆕 Yangi mijoz ro'yxatdan o'tdi\n\n👤 %s (@%s)\n🆔 %s\n📱 %s\n🎁 %s"),
	AdminTestNotification:  same("🧪 Test Xabar\n\nBu admin xabarnomalarini tekshirish uchun test xabari."),
	AdminTestNotifySummary: same("✅ Test xabari %d ta adminga yuborildi."),
}
