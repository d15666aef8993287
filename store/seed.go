package store

import (
	"time"

	"github.com/tzathaw95-arch/Myanlex/models"
)

// seedCategories is the fixed baseline merged into the category
// suggestions derived from live records.
var seedCategories = []string{
	"Administrative", "Civil", "Constitutional", "Corporate",
	"Criminal", "Family", "Labor", "Land", "Maritime",
}

// SeedCases returns fresh copies of the built-in case set used to
// initialize an empty store and to restore it on reset.
func SeedCases() []*models.LegalCase {
	extracted := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	seeds := []models.LegalCase{
		{
			ID:              "2021-mlr-crim-1",
			CaseName:        "ဒေါ်ခင်စန္ဒာမိုး နှင့် ပြည်ထောင်စုသမ္မတမြန်မာနိုင်ငံတော် ပါ ၂",
			CaseNameEnglish: "Daw Khin Sandar Moe vs. The Union of Myanmar + 2",
			Citation:        "၂၀၂၁ ခုနှစ်၊ မတစ၊ စာ - ၁",
			Court:           "Supreme Court of the Union",
			Judges:          models.StringList{"U Soe Naing"},
			Date:            "2020-06-02",
			CaseType:        "Criminal",
			Summary:         "ရာဇဝတ်ကျင့်ထုံးဥပဒေပုဒ်မ ၈၈ အရ ဝရမ်းကပ်ထားသောပစ္စည်းနှင့်ပတ်သက်၍ တတိယပုဂ္ဂိုလ်များက အရေးဆိုခွင့်ကာလ (၆) လ ကန့်သတ်ချက်ကျော်လွန်ပါက ပုဒ်မ ၈၉ အရ သက်သာခွင့်မရနိုင်ကြောင်း ဆုံးဖြတ်ချက်။",
			Holding:         "ဝရမ်းကပ်ပစ္စည်း အရေးဆိုခွင့်သည် သတ်မှတ်ကာလအတွင်းသာ ရှိသည်။",
			Content:         "ရာဇဝတ်ကျင့်ထုံးဥပဒေပုဒ်မ ၈၈ နှင့် ၈၉ တို့အရ ဝရမ်းကပ်ထားသော ပစ္စည်းများနှင့်ပတ်သက်သည့် အယူခံမှု ဖြစ်သည်။ တတိယပုဂ္ဂိုလ်များသည် သတ်မှတ်ထားသော (၆) လ ကာလအတွင်း အရေးဆိုခြင်း မပြုခဲ့ကြသဖြင့် သက်သာခွင့် မရနိုင်ကြောင်း တရားရုံးချုပ်က ဆုံးဖြတ်သည်။",
			LegalIssues:     models.StringList{"ဝရမ်းကပ်ပစ္စည်း အရေးဆိုခွင့်ကာလ"},
			Parties:         models.Parties{Plaintiff: "ဒေါ်ခင်စန္ဒာမိုး", Defendant: "ပြည်ထောင်စုသမ္မတမြန်မာနိုင်ငံတော်"},
			Status:          models.StatusGoodLaw,
			SourcePDFName:   "2021_Myanmar_Law_Reports.pdf",
		},
		{
			ID:              "2021-mlr-crim-4",
			CaseName:        "မောင်အောင်ကိုဦး နှင့် ပြည်ထောင်စုသမ္မတမြန်မာနိုင်ငံတော်",
			CaseNameEnglish: "Maung Aung Ko Oo vs. The Union of Myanmar",
			Citation:        "၂၀၂၁ ခုနှစ်၊ မတစ၊ စာ - ၄၅",
			Court:           "Supreme Court of the Union",
			Judges:          models.StringList{"Daw Khin May Yee"},
			Date:            "2020-09-14",
			CaseType:        "Criminal",
			Summary:         "မူးယစ်ဆေးဝါးနှင့် စိတ်ကိုပြောင်းလဲစေသော ဆေးဝါးများဆိုင်ရာ ဥပဒေအရ လက်ဝယ်တွေ့ရှိမှုတွင် သိရှိခွင့်ပြုချက် သက်သေထင်ရှားရမည်ဖြစ်ကြောင်း ဆုံးဖြတ်ချက်။",
			Holding:         "လက်ဝယ်ထားရှိမှုအတွက် သိရှိမှုကို သက်သေပြရမည်။",
			Content:         "မူးယစ်ဆေးဝါး လက်ဝယ်တွေ့ရှိမှု စွဲချက်တွင် တရားခံ၏ သိရှိမှု (knowledge) ကို စွဲချက်တင်သူဘက်မှ သက်သေထင်ရှားစွာ ပြသရမည်ဖြစ်ကြောင်း တရားရုံးချုပ်က သုံးသပ်ဆုံးဖြတ်သည်။",
			LegalIssues:     models.StringList{"မူးယစ်ဆေးဝါး လက်ဝယ်ထားရှိမှု", "သိရှိမှု သက်သေပြခြင်း"},
			Parties:         models.Parties{Plaintiff: "မောင်အောင်ကိုဦး", Defendant: "ပြည်ထောင်စုသမ္မတမြန်မာနိုင်ငံတော်"},
			Status:          models.StatusGoodLaw,
			SourcePDFName:   "2021_Myanmar_Law_Reports.pdf",
		},
		{
			ID:              "2021-mlr-civ-1",
			CaseName:        "ဦးမျိုးညွန့် ပါ ၂ နှင့် ဒေါ်ပြည့်ပြည့်ဖြိုး",
			CaseNameEnglish: "U Myo Nyunt + 2 vs. Daw Pyae Pyae Phyo",
			Citation:        "၂၀၂၁ ခုနှစ်၊ မတစ၊ စာ - ၁၀၂",
			Court:           "Supreme Court of the Union",
			Judges:          models.StringList{"U Myo Win"},
			Date:            "2020-02-18",
			CaseType:        "Civil",
			Summary:         "မြေငှားဂရန်ရှိ မြေကွက်အား တရားဝင်စာချုပ်မရှိဘဲ ရောင်းချခြင်းသည် ပစ္စည်းလွှဲပြောင်းခြင်းဥပဒေအရ အတည်မဖြစ်ကြောင်း ဆုံးဖြတ်ချက်။",
			Holding:         "မှတ်ပုံမတင်သော အရောင်းအဝယ်စာချုပ်ဖြင့် ပိုင်ဆိုင်ခွင့် မရရှိနိုင်။",
			Content:         "ပစ္စည်းလွှဲပြောင်းခြင်း ဥပဒေပုဒ်မ ၅၄ အရ မြေနှင့်အဆောက်အအုံ အရောင်းအဝယ်သည် မှတ်ပုံတင်စာချုပ်ဖြင့်သာ အတည်ဖြစ်သည်။ မှတ်ပုံမတင်သော စာချုပ်ဖြင့် ဝယ်ယူသူသည် တရားဝင်ပိုင်ဆိုင်ခွင့် မရရှိနိုင်ကြောင်း ဆုံးဖြတ်သည်။",
			LegalIssues:     models.StringList{"မှတ်ပုံတင်စာချုပ် လိုအပ်ချက်"},
			Parties:         models.Parties{Plaintiff: "ဦးမျိုးညွန့်", Defendant: "ဒေါ်ပြည့်ပြည့်ဖြိုး"},
			Status:          models.StatusGoodLaw,
			SourcePDFName:   "2021_Myanmar_Law_Reports.pdf",
		},
		{
			ID:              "2021-mlr-civ-7",
			CaseName:        "ဒေါ်သန်းသန်းဝင်း နှင့် ဦးကျော်စွာလင်း ပါ ၃",
			CaseNameEnglish: "Daw Than Than Win vs. U Kyaw Swar Lin + 3",
			Citation:        "၂၀၂၁ ခုနှစ်၊ မတစ၊ စာ - ၁၈၇",
			Court:           "Supreme Court of the Union",
			Judges:          models.StringList{"Daw Aye Aye Mu", "U Soe Naing"},
			Date:            "2020-11-30",
			CaseType:        "Land",
			Summary:         "လယ်ယာမြေဥပဒေအရ လုပ်ပိုင်ခွင့်ပြုလက်မှတ်ရရှိသူသာ လယ်ယာမြေအပေါ် တရားစွဲဆိုခွင့်ရှိကြောင်း ဆုံးဖြတ်ချက်။",
			Holding:         "လုပ်ပိုင်ခွင့်လက်မှတ်မရှိသူ၏ စွဲဆိုမှုကို ပလပ်သည်။",
			Content:         "လယ်ယာမြေဥပဒေပုဒ်မ ၉ အရ လယ်ယာမြေလုပ်ပိုင်ခွင့်သည် လုပ်ပိုင်ခွင့်ပြုလက်မှတ် (ပုံစံ-၇) ဖြင့်သာ သက်သေထင်ရှားသည်။ လက်မှတ်မရှိသူသည် လယ်ယာမြေနှင့်ပတ်သက်၍ တရားစွဲဆိုပိုင်ခွင့် မရှိကြောင်း ဆုံးဖြတ်သည်။",
			LegalIssues:     models.StringList{"လယ်ယာမြေ လုပ်ပိုင်ခွင့်"},
			Parties:         models.Parties{Plaintiff: "ဒေါ်သန်းသန်းဝင်း", Defendant: "ဦးကျော်စွာလင်း"},
			Status:          models.StatusDistinguished,
			SourcePDFName:   "2021_Myanmar_Law_Reports.pdf",
		},
		{
			ID:              "2020-mlr-con-2",
			CaseName:        "ဦးဝင်းထိန် နှင့် ရန်ကုန်တိုင်းဒေသကြီးအစိုးရအဖွဲ့",
			CaseNameEnglish: "U Win Htein vs. Yangon Region Government",
			Citation:        "၂၀၂၀ ပြည့်နှစ်၊ မတစ၊ စာ - ၅၆",
			Court:           "Constitutional Tribunal",
			Judges:          models.StringList{"U Myo Nyunt"},
			Date:            "2019-07-22",
			CaseType:        "Constitutional",
			Summary:         "စာချုပ်စာတမ်းမှတ်ပုံတင်ဥပဒေနှင့် ဖွဲ့စည်းပုံအခြေခံဥပဒေပါ ပစ္စည်းပိုင်ဆိုင်ခွင့် အခွင့်အရေးများ ညီညွတ်မှုရှိမရှိ စိစစ်သည့်မှု။",
			Holding:         "စိစစ်ခံဥပဒေသည် ဖွဲ့စည်းပုံနှင့် မဆန့်ကျင်။",
			Content:         "ဖွဲ့စည်းပုံအခြေခံဥပဒေပုဒ်မ ၃၅၆ ပါ နိုင်ငံသားများ၏ ပစ္စည်းပိုင်ဆိုင်ခွင့် ကာကွယ်ချက်နှင့် စာချုပ်စာတမ်းမှတ်ပုံတင်ဥပဒေပါ ပြဋ္ဌာန်းချက်များ ဆန့်ကျင်မှုမရှိကြောင်း ခုံရုံးက ဆုံးဖြတ်သည်။",
			LegalIssues:     models.StringList{"ပစ္စည်းပိုင်ဆိုင်ခွင့်", "ဖွဲ့စည်းပုံညီညွတ်မှု"},
			Parties:         models.Parties{Plaintiff: "ဦးဝင်းထိန်", Defendant: "ရန်ကုန်တိုင်းဒေသကြီးအစိုးရအဖွဲ့"},
			Status:          models.StatusGoodLaw,
			SourcePDFName:   "2020_Myanmar_Law_Reports.pdf",
		},
		{
			ID:              "2019-mlr-fam-3",
			CaseName:        "ဒေါ်နှင်းဝေဝေ နှင့် ဦးသန့်ဇင်",
			CaseNameEnglish: "Daw Hnin Wai Wai vs. U Thant Zin",
			Citation:        "၂၀၁၉ ခုနှစ်၊ မတစ၊ စာ - ၂၁၄",
			Court:           "Supreme Court of the Union",
			Judges:          models.StringList{"Daw Khin May Yee"},
			Date:            "2018-12-05",
			CaseType:        "Family",
			Summary:         "မြန်မာ့ဓလေ့ထုံးတမ်းဥပဒေအရ လင်မယားကွာရှင်းရာတွင် နှစ်ဦးသဘောတူ ပစ္စည်းခွဲဝေမှုဆိုင်ရာ ဆုံးဖြတ်ချက်။ ယခင်စီရင်ထုံးကို ကန့်သတ်ဘောင်အတွင်းသာ ကျင့်သုံးရန် သတိပေးထားသည်။",
			Holding:         "လင်မယားပစ္စည်းကို ဓလေ့ထုံးတမ်းအရ ခွဲဝေရမည်။",
			Content:         "မြန်မာ့ဓလေ့ထုံးတမ်းဥပဒေအရ လင်မယားနှစ်ပါး ကွာရှင်းပြတ်စဲရာတွင် လက်ထပ်စဉ်ကရရှိသော ပစ္စည်းနှင့် လက်ထပ်ပြီးနောက် ရရှိသောပစ္စည်းများကို ခွဲခြားသတ်မှတ်၍ ခွဲဝေရမည်ဖြစ်ကြောင်း ဆုံးဖြတ်သည်။",
			LegalIssues:     models.StringList{"လင်မယားပစ္စည်းခွဲဝေမှု"},
			Parties:         models.Parties{Plaintiff: "ဒေါ်နှင်းဝေဝေ", Defendant: "ဦးသန့်ဇင်"},
			Status:          models.StatusCaution,
			SourcePDFName:   "2019_Myanmar_Law_Reports.pdf",
		},
	}

	out := make([]*models.LegalCase, 0, len(seeds))
	for i := range seeds {
		c := seeds[i]
		c.Headnotes = models.StringList{}
		c.ExtractionDate = extracted
		c.ExtractionConfidence = 100
		c.ExtractedSuccessfully = true
		out = append(out, &c)
	}
	return out
}
